package n3m

import (
	"fmt"
	"math"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

const (
	N3M_HEIGHT_UNITS = 65536.0
)

// TileMesh is the set of texture blocks of one tile.
type TileMesh []TextureBlock

// Assembler turns decoded blocks into final tile-local coordinates.
type Assembler struct {
	// WithElevationScaling maps raw z through the tile elevation range. When
	// false z is scaled like x and y.
	WithElevationScaling bool
}

// Assemble rescales the raw z of every vertex. The input blocks are left
// untouched.
func (a Assembler) Assemble(blocks []TextureBlock, rng ElevationRange, scale GroundScale) (TileMesh, error) {
	zOf := func(raw float64) float64 { return raw / N3M_POSITION_SCALE }

	if a.WithElevationScaling {
		if err := rng.Validate(); err != nil {
			return nil, err
		}
		if !(scale.MeterSpan > 0) || math.IsInf(scale.MeterSpan, 0) {
			return nil, fmt.Errorf("n3m: invalid ground scale %v meters", scale.MeterSpan)
		}
		bottom := float64(rng.Bottom) * N3M_HEIGHT_UNITS / scale.MeterSpan
		top := float64(rng.Top) * N3M_HEIGHT_UNITS / scale.MeterSpan
		zOf = func(raw float64) float64 {
			return (bottom + (top-bottom)/N3M_HEIGHT_UNITS*raw) / N3M_POSITION_SCALE
		}
	}

	mesh := make(TileMesh, len(blocks))
	for i, b := range blocks {
		vertices := make([]Vertex, len(b.Vertices))
		for k, v := range b.Vertices {
			v.Z = zOf(v.Z)
			vertices[k] = v
		}
		faces := make([]Face, len(b.Faces))
		copy(faces, b.Faces)
		mesh[i] = TextureBlock{Vertices: vertices, Faces: faces, ImageURL: b.ImageURL}
	}
	return mesh, nil
}

// DecodeTile decodes an n3m payload and rescales it with the tile elevation
// range and ground scale.
func DecodeTile(payload []byte, baseURL string, rng ElevationRange, scale GroundScale, opts ...DecoderOption) (TileMesh, error) {
	blocks, err := NewDecoder(opts...).Decode(payload, baseURL)
	if err != nil {
		return nil, err
	}
	return Assembler{WithElevationScaling: true}.Assemble(blocks, rng, scale)
}

// FaceGroup is a run of faces of a merged mesh sharing one image.
type FaceGroup struct {
	Image string
	Start int
	End   int
}

type MeshData struct {
	BBox      [2][3]float64
	Vertices  [][3]float64
	TexCoords [][2]float64
	Normals   [][3]float64
	Faces     [][3]int
	Groups    []FaceGroup
}

func NewMeshData() *MeshData {
	return &MeshData{
		BBox: [2][3]float64{vec3d.MaxVal, vec3d.MinVal},
	}
}

func (m *MeshData) AppendBlock(b TextureBlock) {
	count := len(m.Vertices)
	for _, v := range b.Vertices {
		p := vec3d.T{v.X, v.Y, v.Z}
		m.BBox[0] = vec3d.Min((*vec3d.T)(&m.BBox[0]), &p)
		m.BBox[1] = vec3d.Max((*vec3d.T)(&m.BBox[1]), &p)
		m.Vertices = append(m.Vertices, p)
		m.TexCoords = append(m.TexCoords, [2]float64{v.U, v.V})
	}

	start := len(m.Faces)
	for _, f := range b.Faces {
		m.Faces = append(m.Faces, [3]int{count + int(f[0]), count + int(f[1]), count + int(f[2])})
	}
	m.Groups = append(m.Groups, FaceGroup{Image: b.ImageURL, Start: start, End: len(m.Faces)})
}

// Merge concatenates all blocks into one indexed mesh.
func (t TileMesh) Merge() *MeshData {
	m := NewMeshData()
	for _, b := range t {
		m.AppendBlock(b)
	}
	return m
}

func (t TileMesh) VertexCount() int {
	n := 0
	for _, b := range t {
		n += len(b.Vertices)
	}
	return n
}

func (t TileMesh) FaceCount() int {
	n := 0
	for _, b := range t {
		n += len(b.Faces)
	}
	return n
}

// ComputeNormals sets area weighted vertex normals.
func (m *MeshData) ComputeNormals() {
	normals := make([][3]float64, len(m.Vertices))
	for _, f := range m.Faces {
		v0 := vec3d.T(m.Vertices[f[0]])
		v1 := vec3d.T(m.Vertices[f[1]])
		v2 := vec3d.T(m.Vertices[f[2]])
		e1 := vec3d.Sub(&v1, &v0)
		e2 := vec3d.Sub(&v2, &v0)
		n := vec3d.Cross(&e1, &e2)
		for _, i := range f {
			normals[i][0] += n[0]
			normals[i][1] += n[1]
			normals[i][2] += n[2]
		}
	}
	for i := range normals {
		n := vec3d.T(normals[i])
		if n.LengthSqr() == 0 {
			normals[i] = [3]float64{0, 0, 1}
			continue
		}
		normals[i] = n.Normalized()
	}
	m.Normals = normals
}

// OctNormals returns the normals in two byte oct encoding.
func (m *MeshData) OctNormals() [][2]uint8 {
	if len(m.Normals) != len(m.Vertices) {
		m.ComputeNormals()
	}
	enc := make([][2]uint8, len(m.Normals))
	for i, n := range m.Normals {
		enc[i] = octEncode(vec3d.T(n))
	}
	return enc
}

// DecodeOctNormals unpacks two bytes per normal as written from OctNormals.
func DecodeOctNormals(data []byte) ([][3]float64, error) {
	if len(data)%2 != 0 {
		return nil, &DecodeError{What: "odd length oct normal buffer", Offset: len(data) - 1, Size: len(data)}
	}
	out := make([][3]float64, len(data)/2)
	for i := range out {
		out[i] = octDecode(data[2*i], data[2*i+1])
	}
	return out, nil
}
