package n3m

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

const (
	N3M_HEADER_SIZE          = 12
	N3M_DIRECTORY_ENTRY_SIZE = 8
	N3M_VERTEX_SIZE          = 20 // 3 float32 position + 2 float32 texture coordinate
	N3M_FACE_SIZE            = 6

	// Raw x and y span 0..65536 across the tile.
	N3M_POSITION_SCALE = 256.0

	DefaultMaxTextureCount = 4096
)

// TextureLayout selects the shape of the texture-name directory.
type TextureLayout int

const (
	// TextureLayoutPairs stores (index, start) per texture.
	TextureLayoutPairs TextureLayout = iota
	// TextureLayoutQuads is the legacy (count, index, start, end) form.
	TextureLayoutQuads
)

func (l TextureLayout) entrySize() int {
	if l == TextureLayoutQuads {
		return 16
	}
	return 8
}

func (l TextureLayout) String() string {
	switch l {
	case TextureLayoutPairs:
		return "pairs"
	case TextureLayoutQuads:
		return "quads"
	default:
		return fmt.Sprintf("TextureLayout(%d)", int(l))
	}
}

// Vertex is a tile-local vertex. X and Y are in 1/256 of the tile width. Z
// is raw fixed point until a mesh is assembled.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// Face indexes three vertices of its texture block.
type Face [3]uint16

// TextureBlock is the part of a tile mesh drawn with one texture image.
type TextureBlock struct {
	Vertices []Vertex
	Faces    []Face
	ImageURL string
}

type blockRef struct {
	Start int
	Count int
}

type Decoder struct {
	layout      TextureLayout
	gap         int
	maxTextures int
	logger      *zap.Logger
}

type DecoderOption func(*Decoder)

func WithTextureLayout(layout TextureLayout) DecoderOption {
	return func(d *Decoder) { d.layout = layout }
}

// WithTextureDirectoryGap sets the number of bytes between the face directory
// and the texture-name directory.
func WithTextureDirectoryGap(gap int) DecoderOption {
	return func(d *Decoder) { d.gap = gap }
}

func WithMaxTextureCount(n int) DecoderOption {
	return func(d *Decoder) { d.maxTextures = n }
}

func WithLogger(logger *zap.Logger) DecoderOption {
	return func(d *Decoder) { d.logger = logger }
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		layout:      TextureLayoutPairs,
		maxTextures: DefaultMaxTextureCount,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// Decode parses one n3m payload. Texture names are resolved against baseURL,
// the location the payload was fetched from.
func (d *Decoder) Decode(payload []byte, baseURL string) ([]TextureBlock, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("n3m: invalid base url %q: %w", baseURL, err)
	}

	cur := newCursor(payload)
	cur.seek(4)
	count := int(cur.int32("texture count"))
	if err := cur.err(); err != nil {
		return nil, err
	}
	if count < 0 || count > d.maxTextures {
		return nil, &DecodeError{What: fmt.Sprintf("texture count %d", count), Offset: 4, Size: len(payload)}
	}

	dirEnd := N3M_HEADER_SIZE + count*2*N3M_DIRECTORY_ENTRY_SIZE + d.gap + count*d.layout.entrySize()
	if dirEnd > len(payload) {
		return nil, &DecodeError{What: "directories", Offset: N3M_HEADER_SIZE, Length: dirEnd - N3M_HEADER_SIZE, Size: len(payload)}
	}

	cur.seek(N3M_HEADER_SIZE)
	vertexRefs := d.readDirectory(cur, count, "vertex directory")
	faceRefs := d.readDirectory(cur, count, "face directory")
	if err := cur.err(); err != nil {
		return nil, err
	}

	blocks := make([]TextureBlock, count)
	for i := range blocks {
		if blocks[i].Vertices, err = readVertices(payload, vertexRefs[i]); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if blocks[i].Faces, err = readFaces(payload, faceRefs[i], len(blocks[i].Vertices)); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}

	cur.seek(N3M_HEADER_SIZE + count*2*N3M_DIRECTORY_ENTRY_SIZE + d.gap)
	named := make([]bool, count)
	for i := 0; i < count; i++ {
		entry := cur.off
		index, start := d.readTextureEntry(cur)
		if err := cur.err(); err != nil {
			return nil, err
		}
		if index < 0 || index >= count {
			return nil, &DecodeError{What: fmt.Sprintf("texture entry %d names block %d of %d", i, index, count), Offset: entry, Size: len(payload)}
		}
		if named[index] {
			return nil, &DecodeError{What: fmt.Sprintf("texture entry %d names block %d twice", i, index), Offset: entry, Size: len(payload)}
		}
		named[index] = true
		name, err := readTextureName(payload, start)
		if err != nil {
			return nil, fmt.Errorf("texture %d: %w", i, err)
		}
		if baseURL == "" {
			blocks[index].ImageURL = name
			continue
		}
		ref, err := url.Parse(name)
		if err != nil {
			return nil, &DecodeError{What: fmt.Sprintf("texture name %q", name), Offset: start, Size: len(payload)}
		}
		blocks[index].ImageURL = base.ResolveReference(ref).String()
	}
	for i, ok := range named {
		if !ok {
			return nil, &DecodeError{What: fmt.Sprintf("block %d has no texture entry", i), Offset: N3M_HEADER_SIZE + count*2*N3M_DIRECTORY_ENTRY_SIZE + d.gap, Size: len(payload)}
		}
	}

	d.logger.Debug("decoded n3m payload",
		zap.Int("bytes", len(payload)),
		zap.Int("textures", count),
		zap.Stringer("layout", d.layout),
	)
	for i, b := range blocks {
		d.logger.Debug("texture block",
			zap.Int("block", i),
			zap.Int("vertices", len(b.Vertices)),
			zap.Int("faces", len(b.Faces)),
			zap.String("image", b.ImageURL),
		)
	}
	return blocks, nil
}

func (d *Decoder) readDirectory(cur *cursor, count int, what string) []blockRef {
	refs := make([]blockRef, count)
	for i := range refs {
		refs[i].Start = int(cur.int32(what))
		refs[i].Count = int(cur.int32(what))
	}
	return refs
}

func (d *Decoder) readTextureEntry(cur *cursor) (index, start int) {
	if d.layout == TextureLayoutQuads {
		cur.int32("texture entry count")
		index = int(cur.int32("texture entry index"))
		start = int(cur.int32("texture entry start"))
		cur.int32("texture entry end")
		return index, start
	}
	index = int(cur.int32("texture entry index"))
	start = int(cur.int32("texture entry start"))
	return index, start
}

// readVertices reads count (z, x, y) positions followed by count (u, v)
// texture coordinates.
func readVertices(payload []byte, ref blockRef) ([]Vertex, error) {
	if ref.Count < 0 || ref.Count > len(payload)/N3M_VERTEX_SIZE {
		return nil, &DecodeError{What: fmt.Sprintf("vertex count %d", ref.Count), Offset: ref.Start, Size: len(payload)}
	}
	cur := newCursor(payload)
	cur.seek(ref.Start)
	if cur.take(ref.Count*N3M_VERTEX_SIZE, "vertex block"); cur.err() != nil {
		return nil, cur.err()
	}

	cur.seek(ref.Start)
	vertices := make([]Vertex, ref.Count)
	for i := range vertices {
		z := cur.float32("vertex z")
		x := cur.float32("vertex x")
		y := cur.float32("vertex y")
		vertices[i].X = float64(x) / N3M_POSITION_SCALE
		vertices[i].Y = float64(y) / N3M_POSITION_SCALE
		vertices[i].Z = float64(z)
	}
	for i := range vertices {
		vertices[i].U = float64(cur.float32("vertex u"))
		vertices[i].V = float64(cur.float32("vertex v"))
	}
	return vertices, cur.err()
}

func readFaces(payload []byte, ref blockRef, vertexCount int) ([]Face, error) {
	if ref.Count < 0 || ref.Count > len(payload)/N3M_FACE_SIZE {
		return nil, &DecodeError{What: fmt.Sprintf("face count %d", ref.Count), Offset: ref.Start, Size: len(payload)}
	}
	cur := newCursor(payload)
	cur.seek(ref.Start)
	faces := make([]Face, ref.Count)
	for i := range faces {
		for k := range faces[i] {
			faces[i][k] = cur.uint16("face index")
		}
		if err := cur.err(); err != nil {
			return nil, err
		}
		for _, idx := range faces[i] {
			if int(idx) >= vertexCount {
				return nil, &DecodeError{
					What:   fmt.Sprintf("face %d index %d exceeds %d vertices", i, idx, vertexCount),
					Offset: ref.Start + i*N3M_FACE_SIZE,
					Size:   len(payload),
				}
			}
		}
	}
	return faces, nil
}

// readTextureName reads a length-prefixed ASCII file name.
func readTextureName(payload []byte, start int) (string, error) {
	cur := newCursor(payload)
	cur.seek(start)
	n := int(cur.uint8("texture name length"))
	name := cur.take(n, "texture name")
	if err := cur.err(); err != nil {
		return "", err
	}
	for _, c := range name {
		if c < 0x20 || c > 0x7e {
			return "", &DecodeError{What: fmt.Sprintf("texture name byte 0x%02x", c), Offset: start, Size: len(payload)}
		}
	}
	return string(name), nil
}
