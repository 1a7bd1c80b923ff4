package n3m

import (
	"encoding/binary"
	"math"
)

var byteOrder = binary.LittleEndian

// cursor reads little-endian values from a buffer. The first read that does
// not fit sticks as the cursor error and every later read returns zero.
type cursor struct {
	buf  []byte
	off  int
	fail *DecodeError
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) err() error {
	if c.fail == nil {
		return nil
	}
	return c.fail
}

func (c *cursor) seek(off int) {
	c.off = off
}

func (c *cursor) take(n int, what string) []byte {
	if c.fail != nil {
		return nil
	}
	if n < 0 || c.off < 0 || c.off > len(c.buf) || n > len(c.buf)-c.off {
		c.fail = &DecodeError{What: what, Offset: c.off, Length: n, Size: len(c.buf)}
		return nil
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) uint8(what string) uint8 {
	if b := c.take(1, what); b != nil {
		return b[0]
	}
	return 0
}

func (c *cursor) uint16(what string) uint16 {
	if b := c.take(2, what); b != nil {
		return byteOrder.Uint16(b)
	}
	return 0
}

func (c *cursor) int32(what string) int32 {
	if b := c.take(4, what); b != nil {
		return int32(byteOrder.Uint32(b))
	}
	return 0
}

func (c *cursor) float32(what string) float32 {
	if b := c.take(4, what); b != nil {
		return math.Float32frombits(byteOrder.Uint32(b))
	}
	return 0
}
