// Package serial opens UARTs for SBUS receivers.
package serial

import (
	"errors"
	"fmt"
	"sort"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// ErrNoDevice indicates no serial device is configured.
var ErrNoDevice = errors.New("serial device not specified")

// Port is an opened serial port implementing sbus.Source.
type Port struct {
	Device string
	port   serial.Port
}

// Mode returns the SBUS line settings: 8 data bits, even parity, 2 stop bits.
func (c *Config) Mode() *serial.Mode {
	baud := c.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	return &serial.Mode{
		BaudRate: baud,
		DataBits: DataBits,
		Parity:   serial.EvenParity,
		StopBits: serial.TwoStopBits,
	}
}

// Open opens the configured device.
func (c *Config) Open() (*Port, error) {
	if c.Device == "" {
		return nil, ErrNoDevice
	}
	p, err := serial.Open(c.Device, c.Mode())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Device, err)
	}
	timeout := c.ReadTimeout
	if timeout < 0 {
		timeout = 0
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", c.Device, err)
	}
	if err := p.ResetInputBuffer(); err != nil {
		glog.Warningf("reset input buffer of %s: %v", c.Device, err)
	}
	glog.Infof("serial %s opened at %d baud", c.Device, c.Mode().BaudRate)
	return &Port{Device: c.Device, port: p}, nil
}

// Read implements sbus.Source. It returns 0, nil when no data arrives
// within the read timeout.
func (p *Port) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	return p.port.Read(buf)
}

// Write sends bytes, used for loopback tests of the wiring.
func (p *Port) Write(buf []byte) (int, error) {
	return p.port.Write(buf)
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.port.Close()
}

// IsClosed tells whether err reports a closed port.
func IsClosed(err error) bool {
	var perr *serial.PortError
	return errors.As(err, &perr) && perr.Code() == serial.PortClosed
}

// List enumerates serial ports on the system.
func List() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	sort.Strings(ports)
	return ports, nil
}
