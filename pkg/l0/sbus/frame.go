package sbus

import "io"

// Frame layout.
const (
	PacketSize = 25

	headerByte byte = 0x0F
	footerByte byte = 0x00

	payloadOffset = 1
	groupSize     = 11
	flagsOffset   = PacketSize - 2
	footerOffset  = PacketSize - 1
)

// Flag bits in the flag byte.
const (
	FlagCh17      byte = 1 << 0
	FlagCh18      byte = 1 << 1
	FlagFrameLost byte = 1 << 2
	FlagFailsafe  byte = 1 << 3
)

// Frame is a decoded SBUS frame.
type Frame struct {
	Channels [NumChannels]Chan

	// Ch17 and Ch18 are the digital channels.
	Ch17 bool
	Ch18 bool
	// FrameLost is set by the receiver when a frame from the
	// transmitter was dropped.
	FrameLost bool
	// Failsafe is set when the receiver considers the link lost.
	Failsafe bool
}

// Unpack decodes a structurally valid packet. Header and footer are not checked.
func Unpack(packet *[PacketSize]byte) Frame {
	var f Frame
	unpackGroup(f.Channels[:8], packet[payloadOffset:payloadOffset+groupSize])
	unpackGroup(f.Channels[8:], packet[payloadOffset+groupSize:payloadOffset+2*groupSize])
	f.SetFlags(packet[flagsOffset])
	return f
}

// FrameFromBytes validates and decodes exactly one packet.
func FrameFromBytes(b []byte) (Frame, error) {
	if len(b) != PacketSize {
		return Frame{}, ErrFrameSize
	}
	if b[0] != headerByte {
		return Frame{}, ErrHeaderMismatch
	}
	if b[footerOffset] != footerByte {
		return Frame{}, ErrFooterMismatch
	}
	var packet [PacketSize]byte
	copy(packet[:], b)
	return Unpack(&packet), nil
}

// Channel i (0-7) of a group occupies bits [11*i, 11*i+11) of the
// 11 bytes read as a little-endian bit stream.
func unpackGroup(chs []Chan, b []byte) {
	w := func(i int) uint16 { return uint16(b[i]) }
	chs[0] = NewChan(w(1)<<8 | w(0))
	chs[1] = NewChan(w(2)<<5 | w(1)>>3)
	chs[2] = NewChan(w(4)<<10 | w(3)<<2 | w(2)>>6)
	chs[3] = NewChan(w(5)<<7 | w(4)>>1)
	chs[4] = NewChan(w(6)<<4 | w(5)>>4)
	chs[5] = NewChan(w(8)<<9 | w(7)<<1 | w(6)>>7)
	chs[6] = NewChan(w(9)<<6 | w(8)>>2)
	chs[7] = NewChan(w(10)<<3 | w(9)>>5)
}

func packGroup(b []byte, chs []Chan) {
	var acc uint32
	var bits uint
	n := 0
	for _, ch := range chs {
		acc |= uint32(ch.Value()&ChanMask) << bits
		bits += ChanBits
		for bits >= 8 {
			b[n] = byte(acc)
			n++
			acc >>= 8
			bits -= 8
		}
	}
}

// SetFlags decodes the status bits from the flag byte.
func (f *Frame) SetFlags(flags byte) {
	f.Ch17 = flags&FlagCh17 != 0
	f.Ch18 = flags&FlagCh18 != 0
	f.FrameLost = flags&FlagFrameLost != 0
	f.Failsafe = flags&FlagFailsafe != 0
}

// Flags encodes the status bits into the flag byte.
func (f *Frame) Flags() (flags byte) {
	if f.Ch17 {
		flags |= FlagCh17
	}
	if f.Ch18 {
		flags |= FlagCh18
	}
	if f.FrameLost {
		flags |= FlagFrameLost
	}
	if f.Failsafe {
		flags |= FlagFailsafe
	}
	return
}

// Packet encodes the frame into wire format.
func (f *Frame) Packet() (packet [PacketSize]byte) {
	packet[0] = headerByte
	packGroup(packet[payloadOffset:payloadOffset+groupSize], f.Channels[:8])
	packGroup(packet[payloadOffset+groupSize:payloadOffset+2*groupSize], f.Channels[8:])
	packet[flagsOffset] = f.Flags()
	packet[footerOffset] = footerByte
	return
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes() []byte {
	packet := f.Packet()
	return packet[:]
}

// WriteTo writes encoded bytes.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	packet := f.Packet()
	n, err := w.Write(packet[:])
	return int64(n), err
}

// Values returns the raw values of all proportional channels.
func (f *Frame) Values() []uint16 {
	vals := make([]uint16, NumChannels)
	for n, ch := range f.Channels {
		vals[n] = ch.Value()
	}
	return vals
}
