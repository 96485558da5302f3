package port

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/rclink/pkg/cli/sh"
	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/l0/serial"
)

// ListenTimeout stops listening when no frame arrives in time.
const ListenTimeout = 5 * time.Second

// pollInterval is used when the port is nonblocking.
const pollInterval = time.Millisecond

// ErrListenTimeout indicates no frame arrived within ListenTimeout.
var ErrListenTimeout = errors.New("no frame received")

// Listen polls src until count frames are decoded, calling fn for each.
func Listen(src sbus.Source, count int, timeout time.Duration, fn func(*sbus.Frame)) (sbus.Stats, error) {
	poller := sbus.NewPoller(src)
	deadline := time.Now().Add(timeout)
	for received := 0; received < count; {
		frame, err := poller.Poll()
		if err != nil {
			return poller.Stats, err
		}
		if frame == nil {
			if time.Now().After(deadline) {
				return poller.Stats, ErrListenTimeout
			}
			time.Sleep(pollInterval)
			continue
		}
		received++
		deadline = time.Now().Add(timeout)
		fn(frame)
	}
	return poller.Stats, nil
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"p"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ports, err := serial.List()
			if err != nil {
				c.Err(err)
				return
			}
			if s := sh.ShellFrom(c); s.OutputJSON {
				if ports == nil {
					ports = []string{}
				}
				s.PrintJSON(c, ports)
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// ListenCmd reads frames from the serial port.
	ListenCmd = ishell.Cmd{
		Name:    "listen",
		Aliases: []string{"l"},
		Help:    "[N] [DEVICE]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			count := 1
			conf := *s.Serial
			if len(c.Args) > 0 {
				n, err := strconv.Atoi(c.Args[0])
				if err != nil || n <= 0 {
					c.Err(fmt.Errorf("invalid N: %q", c.Args[0]))
					return
				}
				count = n
			}
			if len(c.Args) > 1 {
				conf.Device = c.Args[1]
			}
			port, err := conf.Open()
			if err != nil {
				c.Err(err)
				return
			}
			defer port.Close()
			stats, err := Listen(port, count, ListenTimeout, func(f *sbus.Frame) {
				s.PrintFrame(c, f)
			})
			if err != nil {
				c.Err(err)
			}
			if !s.OutputJSON {
				c.Printf("bytes=%d frames=%d header_errors=%d footer_errors=%d read_errors=%d\n",
					stats.Bytes, stats.Frames, stats.HeaderErrors, stats.FooterErrors, stats.ReadErrors)
			}
		},
	}
)

func init() {
	sh.AddCmds(
		&PortsCmd,
		&ListenCmd,
	)
}
