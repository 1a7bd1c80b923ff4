package n3m

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeodetic(t *testing.T) {
	scale := GroundScaleForLatSpan(0.5)
	m := TileMesh{{
		Vertices: []Vertex{
			{X: 0, Y: 0, Z: 0},
			{X: 128, Y: 128, Z: 256},
			{X: 256, Y: 256, Z: 0},
		},
		Faces: []Face{{0, 1, 2}},
	}}.Merge()

	llh := Geodetic(m, NewCoordinate(0, 0, 0), Mercator{}, scale)
	require.InDeltaSlice(t, []float64{-180, -85.0511287798066, 0}, llh[0][:], 1e-9)
	require.InDeltaSlice(t, []float64{0, 0, scale.MeterSpan}, llh[1][:], 1e-6)
	require.InDeltaSlice(t, []float64{180, 85.0511287798066, 0}, llh[2][:], 1e-9)
}

func TestGeocentric(t *testing.T) {
	m := TileMesh{{
		Vertices: []Vertex{{X: 128, Y: 128, Z: 0}, {X: 192, Y: 128, Z: 0}, {X: 128, Y: 192, Z: 0}},
		Faces:    []Face{{0, 1, 2}},
	}}.Merge()

	ecef, err := Geocentric(m, NewCoordinate(0, 0, 0), Mercator{}, GroundScaleForLatSpan(1))
	require.NoError(t, err)
	require.Len(t, ecef, 3)
	require.InDeltaSlice(t, []float64{EarthRadius, 0, 0}, ecef[0][:], 1e-3)
	// 90 degrees east lies on the y axis.
	require.InDelta(t, 0, ecef[1][0], 1e-3)
	require.InDelta(t, EarthRadius, ecef[1][1], 1e-3)
}
