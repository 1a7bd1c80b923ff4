package n3m

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLoaderFromDirSource(t *testing.T) {
	ctx := context.Background()
	src := NewDirSource(t.TempDir(), zaptest.NewLogger(t))
	coord := NewCoordinate(21, 20, 14)

	ranges := make([]ElevationRange, MipmapEntries(2))
	offset, err := MipmapOffset(coord)
	require.NoError(t, err)
	ranges[offset] = ElevationRange{Bottom: 100, Top: 200}

	require.NoError(t, src.WriteFile(coord, MeshExtension, buildPayload([]testBlock{triangleBlock("tex_0.jpg")}, TextureLayoutPairs, 0)))
	require.NoError(t, src.WriteFile(coord.Container(LUTZoom), LUTExtension, EncodeMipmap(ranges)))

	endpoint, err := NewEndpoint("")
	require.NoError(t, err)
	loader := &Loader{
		Source:    src,
		Endpoint:  endpoint,
		Assembler: Assembler{WithElevationScaling: true},
		Logger:    zaptest.NewLogger(t),
	}

	mesh, err := loader.Load(ctx, coord)
	require.NoError(t, err)
	require.Len(t, mesh, 1)

	meshURL, err := endpoint.MeshURL(coord)
	require.NoError(t, err)
	require.Equal(t, meshURL[:strings.LastIndex(meshURL, "/")+1]+"tex_0.jpg", mesh[0].ImageURL)

	// Raw height 0 sits at the bottom of the range, 65536 at the top.
	scale := GroundScaleOf(Mercator{}, coord)
	llh := Geodetic(mesh.Merge(), coord, Mercator{}, scale)
	require.InDelta(t, 100, llh[0][2], 1e-6)
	require.InDelta(t, 200, llh[2][2], 1e-6)
}

func TestLoaderMissingTiles(t *testing.T) {
	ctx := context.Background()
	src := NewDirSource(t.TempDir(), nil)
	coord := NewCoordinate(21, 20, 14)
	loader := &Loader{Source: src, Assembler: Assembler{WithElevationScaling: true}}

	_, err := loader.Load(ctx, coord)
	require.ErrorIs(t, err, ErrNotFound)

	// A mesh without its mipmap cannot be placed vertically.
	require.NoError(t, src.WriteFile(coord, MeshExtension, buildPayload([]testBlock{triangleBlock("t.jpg")}, TextureLayoutPairs, 0)))
	_, err = loader.Load(ctx, coord)
	require.ErrorIs(t, err, ErrElevationLookup)

	// Without elevation scaling the mipmap is not needed.
	loader.Assembler.WithElevationScaling = false
	mesh, err := loader.Load(ctx, coord)
	require.NoError(t, err)
	require.Equal(t, 3, mesh.VertexCount())
}

func TestDirSourceFilePath(t *testing.T) {
	src := NewDirSource("/data", nil)
	path, err := src.FilePath(NewCoordinate(163, 395, 10), MeshExtension)
	require.NoError(t, err)
	require.Equal(t, "/data/10/0601/26/map_10_628_163.n3m", strings.ReplaceAll(path, "\\", "/"))

	_, err = src.FilePath(NewCoordinate(0, 0, 3), MeshExtension)
	require.ErrorIs(t, err, ErrBadZoom)
}

func TestDirSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirSource(t.TempDir(), nil).ReadMesh(ctx, NewCoordinate(163, 395, 10))
	require.ErrorIs(t, err, context.Canceled)
}
