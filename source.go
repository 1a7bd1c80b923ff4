package n3m

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Source supplies the raw bytes of tiles. Implementations do the I/O the
// decoder never does.
type Source interface {
	ReadMesh(ctx context.Context, c Coordinate) ([]byte, error)
	ReadLUT(ctx context.Context, c Coordinate) ([]byte, error)
}

// DirSource reads a local mirror of the storage layout, with files at
// "{root}/{StoragePath}.n3m" and "{root}/{StoragePath}.lut".
type DirSource struct {
	Root   string
	Logger *zap.Logger
}

func NewDirSource(root string, logger *zap.Logger) *DirSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirSource{Root: root, Logger: logger}
}

func (s *DirSource) FilePath(c Coordinate, ext string) (string, error) {
	path, err := StoragePath(c)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Root, filepath.FromSlash(path+ext)), nil
}

func (s *DirSource) read(ctx context.Context, c Coordinate, ext string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.FilePath(c, ext)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v (%s)", ErrNotFound, c, path)
	}
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("read tile file", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

func (s *DirSource) ReadMesh(ctx context.Context, c Coordinate) ([]byte, error) {
	return s.read(ctx, c, MeshExtension)
}

// ReadLUT reads the mipmap of the LUTZoom container of c.
func (s *DirSource) ReadLUT(ctx context.Context, c Coordinate) ([]byte, error) {
	return s.read(ctx, c.Container(LUTZoom), LUTExtension)
}

// WriteFile stores data under the mirror path of c, creating directories.
func (s *DirSource) WriteFile(c Coordinate, ext string, data []byte) error {
	path, err := s.FilePath(c, ext)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Loader fetches, resolves and decodes whole tiles.
type Loader struct {
	Source     Source
	Endpoint   Endpoint
	Projection Projection
	Assembler  Assembler
	Options    []DecoderOption
	Logger     *zap.Logger
}

// Load returns the assembled mesh of c. Textures resolve against the
// endpoint mesh URL of c.
func (l *Loader) Load(ctx context.Context, c Coordinate) (TileMesh, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	projection := l.Projection
	if projection == nil {
		projection = Mercator{}
	}

	baseURL, err := l.Endpoint.MeshURL(c)
	if err != nil {
		return nil, err
	}
	payload, err := l.Source.ReadMesh(ctx, c)
	if err != nil {
		return nil, err
	}

	var rng ElevationRange
	if l.Assembler.WithElevationScaling {
		mipmap, err := l.Source.ReadLUT(ctx, c)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if rng, err = ResolveElevation(c, mipmap); err != nil {
			return nil, err
		}
	}

	opts := append([]DecoderOption{WithLogger(logger)}, l.Options...)
	blocks, err := NewDecoder(opts...).Decode(payload, baseURL)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", c, err)
	}
	mesh, err := l.Assembler.Assemble(blocks, rng, GroundScaleOf(projection, c))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", c, err)
	}
	logger.Info("loaded tile",
		zap.Stringer("tile", c),
		zap.Int("blocks", len(mesh)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.FaceCount()),
		zap.Uint16("bottom", rng.Bottom),
		zap.Uint16("top", rng.Top),
	)
	return mesh, nil
}
