package main

import (
	"errors"
	"flag"
	"math"

	n3m "github.com/flywave/go-n3m"
)

// tileFlags selects a tile either by column/row or by location.
type tileFlags struct {
	column int
	row    int
	zoom   int
	lat    float64
	lon    float64
}

func (t *tileFlags) register(f *flag.FlagSet) {
	f.IntVar(&t.column, "x", -1, "Tile column")
	f.IntVar(&t.row, "y", -1, "Tile row")
	f.IntVar(&t.zoom, "z", 18, "Zoom level")
	f.Float64Var(&t.lat, "lat", math.NaN(), "Latitude of a point inside the tile")
	f.Float64Var(&t.lon, "lon", math.NaN(), "Longitude of a point inside the tile")
}

func (t *tileFlags) coordinate(p n3m.Projection) (n3m.Coordinate, error) {
	if !math.IsNaN(t.lat) && !math.IsNaN(t.lon) {
		return p.Locate(t.lon, t.lat, t.zoom).Floor(), nil
	}
	if t.column < 0 || t.row < 0 {
		return n3m.Coordinate{}, errors.New("either -x and -y or -lat and -lon are required")
	}
	return n3m.NewCoordinate(t.column, t.row, t.zoom), nil
}
