package sbus

// ChanBits is the width of a proportional channel.
const ChanBits = 11

// ChanMask masks a raw value into channel range.
const ChanMask uint16 = 1<<ChanBits - 1

// NumChannels is the number of proportional channels in a frame.
const NumChannels = 16

// Chan is the raw value of a proportional channel, in range [0, 2047].
// Use NewChan instead of a conversion so the value is kept in range.
type Chan uint16

// NewChan creates a Chan, silently truncating val to the low 11 bits.
func NewChan(val uint16) Chan {
	return Chan(val & ChanMask)
}

// Value returns the raw channel value.
func (c Chan) Value() uint16 {
	return uint16(c)
}
