package n3m

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// EarthRadius is the spherical-Mercator sphere radius in meters.
const EarthRadius = 6378137.0

// Projection maps tile coordinates to geographic bounds and back.
type Projection interface {
	TileBound(c Coordinate) orb.Bound
	Locate(lon, lat float64, zoom int) Coordinate
}

// Mercator is the spherical-Mercator tile grid of orb/maptile.
type Mercator struct{}

func (Mercator) TileBound(c Coordinate) orb.Bound {
	return c.Tile().Bound()
}

func (Mercator) Locate(lon, lat float64, zoom int) Coordinate {
	p := maptile.Fraction(orb.Point{lon, lat}, maptile.Zoom(zoom))
	return Coordinate{Column: p[0], Row: p[1], Zoom: zoom}
}

// GroundScale converts meters to the fixed-point vertical unit of one tile.
type GroundScale struct {
	MeterSpan float64
}

// GroundScaleForLatSpan measures a latitude span along a meridian.
func GroundScaleForLatSpan(latSpanDegrees float64) GroundScale {
	return GroundScale{MeterSpan: EarthRadius * math.Pi * math.Abs(latSpanDegrees) / 180}
}

// GroundScaleOf measures the north-south extent of the tile holding c.
func GroundScaleOf(p Projection, c Coordinate) GroundScale {
	b := p.TileBound(c)
	return GroundScaleForLatSpan(b.Max[1] - b.Min[1])
}
