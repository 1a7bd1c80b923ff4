package n3m

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb/maptile"
)

// Coordinate is a spherical-Mercator tile coordinate. Column and Row may be
// fractional; they are floored before addressing.
type Coordinate struct {
	Column float64
	Row    float64
	Zoom   int
}

func NewCoordinate(column, row, zoom int) Coordinate {
	return Coordinate{Column: float64(column), Row: float64(row), Zoom: zoom}
}

// CoordinateOf converts an orb map tile.
func CoordinateOf(t maptile.Tile) Coordinate {
	return Coordinate{Column: float64(t.X), Row: float64(t.Y), Zoom: int(t.Z)}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%g/%g@%d", c.Column, c.Row, c.Zoom)
}

// ZoomTo re-expresses the coordinate at zoom z.
func (c Coordinate) ZoomTo(z int) Coordinate {
	dz := z - c.Zoom
	return Coordinate{
		Column: math.Ldexp(c.Column, dz),
		Row:    math.Ldexp(c.Row, dz),
		Zoom:   z,
	}
}

func (c Coordinate) Floor() Coordinate {
	return Coordinate{Column: math.Floor(c.Column), Row: math.Floor(c.Row), Zoom: c.Zoom}
}

// InGrid reports whether the floored column and row lie inside the 2^zoom
// grid.
func (c Coordinate) InGrid() bool {
	if c.Zoom < 0 || c.Zoom > 62 {
		return false
	}
	size := math.Ldexp(1, c.Zoom)
	f := c.Floor()
	return f.Column >= 0 && f.Row >= 0 && f.Column < size && f.Row < size
}

// Container returns the tile at zoom z that contains c.
func (c Coordinate) Container(z int) Coordinate {
	return c.ZoomTo(z).Floor()
}

func (c Coordinate) Tile() maptile.Tile {
	f := c.Floor()
	return maptile.New(uint32(f.Column), uint32(f.Row), maptile.Zoom(c.Zoom))
}

// NativeIndex is the format's own tile index. Its Y axis runs south to north.
type NativeIndex struct {
	X int
	Y int
	Z int
}

func ToNativeIndex(c Coordinate) NativeIndex {
	return NativeIndex{
		X: int(math.Floor(c.Column)),
		Y: (1 << c.Zoom) - int(math.Floor(c.Row)) - 1,
		Z: c.Zoom,
	}
}

func FromNativeIndex(x, y, z int) Coordinate {
	return NewCoordinate(x, (1<<z)-y-1, z)
}

func (n NativeIndex) Coordinate() Coordinate {
	return FromNativeIndex(n.X, n.Y, n.Z)
}

// pathDigits returns ceil(log10(2^z)), the zero padded width of native indices.
func pathDigits(z int) int {
	d := 0
	for p, n := uint64(1), uint64(1)<<z; p < n; p *= 10 {
		d++
	}
	return d
}

// StoragePath returns the extension-less storage path of the tile,
// "{z}/{dir}/map_{z}_{y}_{x}".
func StoragePath(c Coordinate) (string, error) {
	if c.Zoom < 0 || c.Zoom > 62 {
		return "", &BadZoomError{Zoom: c.Zoom, Digits: -1}
	}
	if !c.InGrid() {
		return "", &OutOfGridError{Coord: c}
	}
	n := ToNativeIndex(c)

	d := pathDigits(n.Z)
	row := fmt.Sprintf("%0*d", d, n.Y)
	col := fmt.Sprintf("%0*d", d, n.X)

	var dir string
	switch d {
	case 4:
		dir = row[0:2] + col[0:2] + "/" + row[2:3] + col[2:3]
	case 5:
		dir = row[0:2] + col[0:2] + "/" + row[2:4] + col[2:4]
	case 6:
		dir = row[0:2] + col[0:2] + "/" + row[2:4] + col[2:4] + "/" + row[4:5] + col[4:5]
	default:
		return "", &BadZoomError{Zoom: n.Z, Digits: d}
	}

	return fmt.Sprintf("%d/%s/map_%d_%d_%d", n.Z, dir, n.Z, n.Y, n.X), nil
}

// Shard names one of the interchangeable storage hosts.
type Shard byte

var shards = [4]Shard{'b', 'c', 'd', 'e'}

func (s Shard) String() string { return string(rune(s)) }

// SelectShard spreads tiles over the four storage hosts. The rule must match
// the existing store layout bit for bit.
func SelectShard(c Coordinate) Shard {
	n := int(c.Row + c.Column + float64(c.Zoom))
	return shards[((n%4)+4)%4]
}

const (
	MeshExtension    = ".n3m"
	LUTExtension     = ".lut"
	TextureExtension = "_0.jpg"

	DefaultEndpoint = "http://{shard}.maps3d.svc.nokia.com/data4/{path}"
)

// Endpoint expands tile locations from a URL template holding {shard} and
// {path} placeholders.
type Endpoint struct {
	Template string
}

func NewEndpoint(template string) (Endpoint, error) {
	if template == "" {
		template = DefaultEndpoint
	}
	if !strings.Contains(template, "{path}") {
		return Endpoint{}, fmt.Errorf("n3m: endpoint template %q has no {path} placeholder", template)
	}
	return Endpoint{Template: template}, nil
}

func (e Endpoint) locate(c Coordinate, ext string) (string, error) {
	path, err := StoragePath(c)
	if err != nil {
		return "", err
	}
	template := e.Template
	if template == "" {
		template = DefaultEndpoint
	}
	url := strings.ReplaceAll(template, "{shard}", SelectShard(c).String())
	return strings.ReplaceAll(url, "{path}", path+ext), nil
}

func (e Endpoint) MeshURL(c Coordinate) (string, error) {
	return e.locate(c, MeshExtension)
}

// LUTURL locates the elevation mipmap covering c, stored at LUTZoom.
func (e Endpoint) LUTURL(c Coordinate) (string, error) {
	return e.locate(c.Container(LUTZoom), LUTExtension)
}

func (e Endpoint) TextureURL(c Coordinate) (string, error) {
	return e.locate(c, TextureExtension)
}
