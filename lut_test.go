package n3m

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMipmapEntries(t *testing.T) {
	require.Equal(t, 0, MipmapEntries(0))
	require.Equal(t, 1, MipmapEntries(1))
	require.Equal(t, 5, MipmapEntries(2))
	require.Equal(t, 21, MipmapEntries(3))
}

func TestMipmapOffsetAtLookupZoom(t *testing.T) {
	offset, err := MipmapOffset(NewCoordinate(100, 50, LUTZoom))
	require.NoError(t, err)
	require.Equal(t, 0, offset)
}

func TestMipmapOffsetOneLevelDown(t *testing.T) {
	// Level 1 starts after the single level 0 entry; columns step by the
	// level side and rows count down from the far edge.
	for _, tc := range []struct {
		col, row int
		want     int
	}{
		{200, 100, 1 + 0*2 + 1},
		{200, 101, 1 + 0*2 + 0},
		{201, 100, 1 + 1*2 + 1},
		{201, 101, 1 + 1*2 + 0},
	} {
		offset, err := MipmapOffset(NewCoordinate(tc.col, tc.row, LUTZoom+1))
		require.NoError(t, err)
		require.Equalf(t, tc.want, offset, "tile %d/%d", tc.col, tc.row)
	}
}

func TestMipmapOffsetTwoLevelsDown(t *testing.T) {
	// Container 100/50@13 covers 400..403 x 200..203 at zoom 15.
	offset, err := MipmapOffset(NewCoordinate(402, 201, LUTZoom+2))
	require.NoError(t, err)
	require.Equal(t, 5+2*4+(4-1-1), offset)
}

func TestResolveElevation(t *testing.T) {
	ranges := make([]ElevationRange, MipmapEntries(2))
	for i := range ranges {
		ranges[i] = ElevationRange{Bottom: uint16(10 * i), Top: uint16(10*i + 5)}
	}
	mipmap := EncodeMipmap(ranges)

	got, err := ResolveElevation(NewCoordinate(100, 50, LUTZoom), mipmap)
	require.NoError(t, err)
	require.Equal(t, ElevationRange{Bottom: 0, Top: 5}, got)

	got, err = ResolveElevation(NewCoordinate(201, 100, LUTZoom+1), mipmap)
	require.NoError(t, err)
	require.Equal(t, ElevationRange{Bottom: 40, Top: 45}, got)
}

func TestResolveElevationErrors(t *testing.T) {
	mipmap := EncodeMipmap(make([]ElevationRange, MipmapEntries(2)))

	_, err := ResolveElevation(NewCoordinate(100, 50, LUTZoom+1), nil)
	require.ErrorIs(t, err, ErrElevationLookup)

	_, err = ResolveElevation(NewCoordinate(10, 5, LUTZoom-1), mipmap)
	require.ErrorIs(t, err, ErrElevationLookup)

	_, err = ResolveElevation(NewCoordinate(400, 200, LUTZoom+2), mipmap)
	require.ErrorIs(t, err, ErrElevationLookup)
	require.ErrorIs(t, err, ErrDecode)
	var lookupErr *ElevationLookupError
	require.True(t, errors.As(err, &lookupErr))
	require.Equal(t, NewCoordinate(400, 200, LUTZoom+2), lookupErr.Coord)
	require.Greater(t, lookupErr.Offset, len(mipmap)-4)

	inverted := EncodeMipmap([]ElevationRange{{Bottom: 300, Top: 200}})
	_, err = ResolveElevation(NewCoordinate(100, 50, LUTZoom), inverted)
	require.ErrorIs(t, err, ErrElevationLookup)
}
