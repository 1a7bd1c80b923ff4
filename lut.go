package n3m

import (
	"encoding/binary"
	"fmt"
)

// LUTZoom is the zoom of the tiles that carry elevation mipmaps.
const LUTZoom = 13

// The mipmap is stored on its side, west up. Captured buffers have been read
// with a column bias of -1 and a row bias of +1 by some revisions of the
// format; both biases are 0 here until checked against real mipmaps.
const (
	LUTColumnBias = 0
	LUTRowBias    = 0
)

const (
	lutEntrySize = 4
	maxLUTDepth  = 16
)

// ElevationRange is the height span of a tile in meters.
type ElevationRange struct {
	Bottom uint16
	Top    uint16
}

func (r ElevationRange) Validate() error {
	if r.Bottom > r.Top {
		return fmt.Errorf("%w: bottom %d above top %d", ErrElevationLookup, r.Bottom, r.Top)
	}
	return nil
}

// MipmapEntries returns the number of entries in a mipmap of the given depth.
func MipmapEntries(levels int) int {
	return ((1 << (2 * levels)) - 1) / 3
}

// MipmapOffset returns the entry index of c in the mipmap of its LUTZoom
// container.
func MipmapOffset(c Coordinate) (int, error) {
	delta := c.Zoom - LUTZoom
	if delta < 0 {
		return 0, &ElevationLookupError{Coord: c, Offset: -1, Reason: fmt.Sprintf("zoom is coarser than lookup zoom %d", LUTZoom)}
	}
	if delta >= maxLUTDepth {
		return 0, &ElevationLookupError{Coord: c, Offset: -1, Reason: fmt.Sprintf("zoom is %d levels below lookup zoom", delta)}
	}

	base := c.Container(LUTZoom).ZoomTo(c.Zoom)
	colOffset := int(c.Floor().Column - base.Column)
	rowOffset := int(c.Floor().Row - base.Row)
	side := 1 << delta

	offset := MipmapEntries(delta)
	offset += (colOffset + LUTColumnBias) * side
	offset += side - rowOffset - 1 + LUTRowBias
	return offset, nil
}

// ResolveElevation reads the elevation range of c from the mipmap of its
// LUTZoom container.
func ResolveElevation(c Coordinate, mipmap []byte) (ElevationRange, error) {
	if len(mipmap) == 0 {
		return ElevationRange{}, &ElevationLookupError{Coord: c, Offset: -1, Reason: "no mipmap for container tile"}
	}
	offset, err := MipmapOffset(c)
	if err != nil {
		return ElevationRange{}, err
	}

	cur := newCursor(mipmap)
	cur.seek(offset * lutEntrySize)
	bottom := cur.uint16("mipmap bottom")
	top := cur.uint16("mipmap top")
	if err := cur.err(); err != nil {
		return ElevationRange{}, &ElevationLookupError{Coord: c, Offset: offset * lutEntrySize, Reason: "entry outside mipmap", Err: err}
	}

	r := ElevationRange{Bottom: bottom, Top: top}
	if r.Bottom > r.Top {
		return ElevationRange{}, &ElevationLookupError{Coord: c, Offset: offset * lutEntrySize, Reason: fmt.Sprintf("bottom %d above top %d", r.Bottom, r.Top)}
	}
	return r, nil
}

// EncodeMipmap packs ranges level by level into mipmap bytes.
func EncodeMipmap(ranges []ElevationRange) []byte {
	buf := make([]byte, 0, len(ranges)*lutEntrySize)
	for _, r := range ranges {
		buf = binary.LittleEndian.AppendUint16(buf, r.Bottom)
		buf = binary.LittleEndian.AppendUint16(buf, r.Top)
	}
	return buf
}
