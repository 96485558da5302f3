package sbus

import (
	"github.com/golang/glog"
)

// Source is a nonblocking byte source, usually a serial port.
// Read returns (0, nil) when no data is available yet. Line errors
// are reported as *ReadError.
type Source interface {
	Read(p []byte) (int, error)
}

// Stats counts poller activities.
type Stats struct {
	Bytes        uint64
	Frames       uint64
	HeaderErrors uint64
	FooterErrors uint64
	ReadErrors   uint64
}

// Poller reads from a Source and decodes frames, one read per Poll.
type Poller struct {
	Source   Source
	Receiver Receiver
	Stats    Stats
}

// NewPoller creates a Poller.
func NewPoller(src Source) *Poller {
	return &Poller{Source: src}
}

// Poll performs at most one read and attempts to decode a frame.
// It returns nil frame when no complete valid frame is available.
// Hardware read errors and invalid frames are logged and recovered
// locally; only other errors from Source are returned.
func (p *Poller) Poll() (*Frame, error) {
	n, err := p.Source.Read(p.Receiver.FreeBuf())
	if err != nil {
		if IsReadError(err) {
			p.Stats.ReadErrors++
			glog.Errorf("error reading sbus: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if n > 0 {
		p.Receiver.ReadBytes(n)
		p.Stats.Bytes += uint64(n)
	}
	f, err := p.Receiver.TryDecode()
	switch err {
	case nil:
		p.Stats.Frames++
		return f, nil
	case ErrHeaderMismatch:
		p.Stats.HeaderErrors++
		glog.Error(err)
	case ErrFooterMismatch:
		p.Stats.FooterErrors++
		glog.Error(err)
	}
	return nil, nil
}
