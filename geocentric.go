package n3m

import (
	"fmt"

	"github.com/flywave/go-proj"
)

// Geodetic places the tile-local vertices of m on the globe as lon, lat and
// height in meters. X runs west to east and Y south to north across the tile.
func Geodetic(m *MeshData, c Coordinate, p Projection, scale GroundScale) [][3]float64 {
	b := p.TileBound(c)
	width := b.Max[0] - b.Min[0]
	height := b.Max[1] - b.Min[1]

	out := make([][3]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = [3]float64{
			b.Min[0] + v[0]/N3M_POSITION_SCALE*width,
			b.Min[1] + v[1]/N3M_POSITION_SCALE*height,
			v[2] * scale.MeterSpan / N3M_POSITION_SCALE,
		}
	}
	return out
}

// Geocentric converts the vertices of m to earth-centred, earth-fixed
// coordinates.
func Geocentric(m *MeshData, c Coordinate, p Projection, scale GroundScale) ([][3]float64, error) {
	llh := Geodetic(m, c, p, scale)
	out := make([][3]float64, len(llh))
	for i, v := range llh {
		x, y, z, err := proj.Lonlat2Ecef(v[0], v[1], v[2])
		if err != nil {
			return nil, fmt.Errorf("n3m: vertex %d of %v: %w", i, c, err)
		}
		out[i] = [3]float64{x, y, z}
	}
	return out, nil
}
