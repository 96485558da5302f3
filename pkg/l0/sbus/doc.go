// Package sbus provides L0 protocol support for SBUS receivers.
package sbus

// SBUS is streamed by an RC receiver over a serial line at 100000 baud,
// 8 data bits, even parity and 2 stop bits. Every frame is 25 bytes:
//
//	byte 0      header, 0x0F
//	bytes 1-11  channels 0-7, 11 bits each, little-endian bit stream
//	bytes 12-22 channels 8-15, same packing
//	byte 23     flags: bit0 ch17, bit1 ch18, bit2 frame lost, bit3 failsafe
//	byte 24     footer, 0x00
//
// There is no checksum. A frame is accepted when the header and footer
// match; on mismatch the whole accumulated window is dropped and the
// receiver starts over from the next byte, so one corrupted byte may cost
// up to a frame of resynchronization delay.
//
// Producer: RC receiver
// Consumer: vehicle controller
