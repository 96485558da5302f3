package sbus

// Receiver accumulates bytes into a fixed-size frame window.
// The zero value is ready to use.
type Receiver struct {
	packet [PacketSize]byte
	size   int
}

// NewReceiver creates a Receiver.
func NewReceiver() *Receiver {
	return &Receiver{}
}

// Len returns the number of bytes accumulated.
func (r *Receiver) Len() int {
	return r.size
}

// FreeBuf returns the unfilled part of the window. Bytes read
// into it are committed with ReadBytes.
func (r *Receiver) FreeBuf() []byte {
	return r.packet[r.size:]
}

// ReadBytes commits count bytes written into FreeBuf.
func (r *Receiver) ReadBytes(count int) {
	if count <= 0 {
		return
	}
	if r.size += count; r.size > PacketSize {
		r.size = PacketSize
	}
}

// Ingest appends as many bytes from p as the window can hold and
// returns the number of bytes accepted. The rest must be ingested
// again after the window is consumed by TryDecode.
func (r *Receiver) Ingest(p []byte) int {
	n := copy(r.packet[r.size:], p)
	r.size += n
	return n
}

// Reset discards all accumulated bytes.
func (r *Receiver) Reset() {
	r.packet = [PacketSize]byte{}
	r.size = 0
}

// TryDecode decodes the accumulated window once it is full.
// It returns ErrNotReady without changing state when the window isn't full.
// Otherwise the window is always consumed, and ErrHeaderMismatch or
// ErrFooterMismatch is returned if the frame is invalid.
func (r *Receiver) TryDecode() (*Frame, error) {
	if r.size < PacketSize {
		return nil, ErrNotReady
	}
	defer r.Reset()
	if r.packet[0] != headerByte {
		return nil, ErrHeaderMismatch
	}
	if r.packet[footerOffset] != footerByte {
		return nil, ErrFooterMismatch
	}
	f := Unpack(&r.packet)
	return &f, nil
}
