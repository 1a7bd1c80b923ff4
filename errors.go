package n3m

import (
	"errors"
	"fmt"
)

var (
	ErrBadZoom         = errors.New("n3m: unsupported zoom for storage path")
	ErrDecode          = errors.New("n3m: malformed tile data")
	ErrElevationLookup = errors.New("n3m: elevation lookup failed")
	ErrNotFound        = errors.New("n3m: tile not found")
	ErrOutOfGrid       = errors.New("n3m: tile outside the zoom grid")
)

// BadZoomError reports a zoom whose row/column digit count has no directory layout.
type BadZoomError struct {
	Zoom   int
	Digits int
}

func (e *BadZoomError) Error() string {
	if e.Digits < 0 {
		return fmt.Sprintf("%v: zoom %d out of range", ErrBadZoom, e.Zoom)
	}
	return fmt.Sprintf("%v: zoom %d needs %d digits, only 4, 5 and 6 are laid out", ErrBadZoom, e.Zoom, e.Digits)
}

func (e *BadZoomError) Is(target error) bool { return target == ErrBadZoom }

// OutOfGridError reports a coordinate whose column or row falls outside the
// 2^zoom by 2^zoom tile grid.
type OutOfGridError struct {
	Coord Coordinate
}

func (e *OutOfGridError) Error() string {
	return fmt.Sprintf("%v: %v", ErrOutOfGrid, e.Coord)
}

func (e *OutOfGridError) Is(target error) bool { return target == ErrOutOfGrid }

// DecodeError reports a read that does not fit inside the buffer, or a directory
// value that cannot be honoured.
type DecodeError struct {
	What   string
	Offset int
	Length int
	Size   int
}

func (e *DecodeError) Error() string {
	if e.Length > 0 {
		return fmt.Sprintf("%v: %s: %d bytes at offset %d exceed buffer of %d bytes", ErrDecode, e.What, e.Length, e.Offset, e.Size)
	}
	return fmt.Sprintf("%v: %s (offset %d, buffer %d bytes)", ErrDecode, e.What, e.Offset, e.Size)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ElevationLookupError reports a failure to resolve the elevation range of Coord.
// Offset is the mipmap byte offset involved, or -1 when none was computed.
type ElevationLookupError struct {
	Coord  Coordinate
	Offset int
	Reason string
	Err    error
}

func (e *ElevationLookupError) Error() string {
	msg := fmt.Sprintf("%v: %v: %s", ErrElevationLookup, e.Coord, e.Reason)
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ElevationLookupError) Is(target error) bool { return target == ErrElevationLookup }

func (e *ElevationLookupError) Unwrap() error { return e.Err }
