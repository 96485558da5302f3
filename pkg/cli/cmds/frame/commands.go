package frame

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/rclink/pkg/cli/sh"
	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/rc"
)

// ParseHex parses a packet written in hex, separators are ignored.
func ParseHex(args ...string) ([]byte, error) {
	str := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-', ',':
			return -1
		}
		return r
	}, strings.Join(args, ""))
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	return hex.DecodeString(str)
}

// ParseChannels parses up to 16 channel values, the 17th value is the flag byte.
// Channels not specified are centered.
func ParseChannels(args ...string) (sbus.Frame, error) {
	var f sbus.Frame
	if len(args) > sbus.NumChannels+1 {
		return f, fmt.Errorf("at most %d values expected", sbus.NumChannels+1)
	}
	for n := range f.Channels {
		f.Channels[n] = sbus.NewChan(rc.ChannelCenter)
	}
	for n, arg := range args {
		val, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return f, fmt.Errorf("invalid value %q: %w", arg, err)
		}
		if n == sbus.NumChannels {
			if val > 0xff {
				return f, fmt.Errorf("invalid flags %q", arg)
			}
			f.SetFlags(byte(val))
			continue
		}
		if val > uint64(sbus.ChanMask) {
			return f, fmt.Errorf("channel %d value %d exceeds %d", n, val, sbus.ChanMask)
		}
		f.Channels[n] = sbus.NewChan(uint16(val))
	}
	return f, nil
}

var (
	// DecodeCmd decodes a packet.
	DecodeCmd = ishell.Cmd{
		Name:    "decode",
		Aliases: []string{"d"},
		Help:    "HEX (25 bytes)",
		Func: func(c *ishell.Context) {
			data, err := ParseHex(c.Args...)
			if err != nil {
				c.Err(err)
				return
			}
			f, err := sbus.FrameFromBytes(data)
			if err != nil {
				c.Err(err)
				return
			}
			sh.ShellFrom(c).PrintFrame(c, &f)
		},
	}

	// EncodeCmd encodes channel values into a packet.
	EncodeCmd = ishell.Cmd{
		Name:    "encode",
		Aliases: []string{"e"},
		Help:    "C0 .. C15 [FLAGS]",
		Func: func(c *ishell.Context) {
			f, err := ParseChannels(c.Args...)
			if err != nil {
				c.Err(err)
				return
			}
			pkt := hex.EncodeToString(f.Bytes())
			if s := sh.ShellFrom(c); s.OutputJSON {
				s.PrintJSON(c, map[string]string{"packet": pkt})
				return
			}
			c.Println(pkt)
		},
	}

	// MapCmd maps channel values into controller state.
	MapCmd = ishell.Cmd{
		Name:    "map",
		Aliases: []string{"m"},
		Help:    "C0 .. C7",
		Func: func(c *ishell.Context) {
			if len(c.Args) > 8 {
				c.Err(fmt.Errorf("at most 8 values expected"))
				return
			}
			f, err := ParseChannels(c.Args...)
			if err != nil {
				c.Err(err)
				return
			}
			s := sh.ShellFrom(c)
			state := s.Mapper.Map(&f.Channels)
			if s.OutputJSON {
				s.PrintJSON(c, &state)
				return
			}
			c.Println(sh.FormatState(&state))
		},
	}
)

func init() {
	sh.AddCmds(
		&DecodeCmd,
		&EncodeCmd,
		&MapCmd,
	)
}
