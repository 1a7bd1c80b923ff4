package n3m

import (
	"encoding/binary"
	"math"
)

// Positions are widened by half a pixel so neighbouring tiles overlap
// instead of leaving a visible seam.
const (
	seamScale  = 258.0 / N3M_HEIGHT_UNITS
	seamOffset = 1.0
)

func seamCorrect(v float64) float64 {
	return (v*N3M_POSITION_SCALE - seamOffset) * seamScale
}

// Positions flattens the triangle corners of every block into x, y, z
// triples with the seam correction applied.
func (t TileMesh) Positions() []float32 {
	out := make([]float32, 0, t.FaceCount()*9)
	for _, b := range t {
		for _, f := range b.Faces {
			for _, i := range f {
				v := b.Vertices[i]
				out = append(out,
					float32(seamCorrect(v.X)),
					float32(seamCorrect(v.Y)),
					float32(seamCorrect(v.Z)),
				)
			}
		}
	}
	return out
}

// RenderBuffer encodes Positions as float32 in the given byte order.
func (t TileMesh) RenderBuffer(order binary.ByteOrder) []byte {
	positions := t.Positions()
	buf := make([]byte, len(positions)*4)
	for i, p := range positions {
		order.PutUint32(buf[i*4:], math.Float32bits(p))
	}
	return buf
}
