package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	n3m "github.com/flywave/go-n3m"
	"github.com/flywave/go-n3m/internal/config"
	"github.com/flywave/go-n3m/internal/logger"
)

type decodeCmd struct {
	tile   tileFlags
	radius int
	output string
}

func (c *decodeCmd) Name() string     { return "decode" }
func (c *decodeCmd) Synopsis() string { return "decode tiles from a local mirror into OBJ meshes" }
func (c *decodeCmd) Usage() string {
	return "n3mtool decode (-x <col> -y <row> | -lat <lat> -lon <lon>) [-z <zoom> -r <radius> -o <dir>]\n"
}
func (c *decodeCmd) SetFlags(f *flag.FlagSet) {
	c.tile.register(f)
	f.IntVar(&c.radius, "r", 0, "Also decode tiles up to this many columns/rows away")
	f.StringVar(&c.output, "o", "", "Output directory (overrides config)")
}

func decoderOptions(cfg *config.Config, log *zap.Logger) []n3m.DecoderOption {
	layout := n3m.TextureLayoutPairs
	if cfg.Decode.TextureLayout == "quads" {
		layout = n3m.TextureLayoutQuads
	}
	opts := []n3m.DecoderOption{
		n3m.WithTextureLayout(layout),
		n3m.WithTextureDirectoryGap(cfg.Decode.TextureGap),
		n3m.WithLogger(log),
	}
	if cfg.Decode.MaxTextureCount > 0 {
		opts = append(opts, n3m.WithMaxTextureCount(cfg.Decode.MaxTextureCount))
	}
	return opts
}

func (c *decodeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	zlog := logger.New(cfg.Logging.Level, cfg.Logging.File, os.Stderr)
	defer zlog.Sync()

	projection := n3m.Mercator{}
	center, err := c.tile.coordinate(projection)
	if err != nil {
		zlog.Error("invalid tile", zap.Error(err))
		return subcommands.ExitUsageError
	}
	endpoint, err := n3m.NewEndpoint(cfg.Source.Endpoint)
	if err != nil {
		zlog.Error("invalid endpoint", zap.Error(err))
		return subcommands.ExitFailure
	}
	outDir := cfg.Output.Dir
	if c.output != "" {
		outDir = c.output
	}

	loader := &n3m.Loader{
		Source:     n3m.NewDirSource(cfg.Source.MirrorDir, zlog),
		Endpoint:   endpoint,
		Projection: projection,
		Assembler:  n3m.Assembler{WithElevationScaling: cfg.Decode.ElevationScaling},
		Options:    decoderOptions(cfg, zlog),
		Logger:     zlog,
	}

	tiles := neighbourhood(center, c.radius)
	bar := progressbar.NewOptions(len(tiles), progressbar.OptionShowCount(), progressbar.OptionSetWriter(os.Stderr))
	failed := 0
	for _, coord := range tiles {
		if err := c.decodeOne(ctx, loader, cfg, coord, outDir); err != nil {
			// One bad tile does not stop the others.
			failed++
			zlog.Warn("tile failed", zap.Stringer("tile", coord), zap.Error(err))
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	if failed > 0 {
		zlog.Error("decode finished with failures", zap.Int("failed", failed), zap.Int("total", len(tiles)))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func neighbourhood(center n3m.Coordinate, radius int) []n3m.Coordinate {
	size := 1 << center.Zoom
	var tiles []n3m.Coordinate
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			col := int(center.Column) + dx
			row := int(center.Row) + dy
			if col < 0 || row < 0 || col >= size || row >= size {
				continue
			}
			tiles = append(tiles, n3m.NewCoordinate(col, row, center.Zoom))
		}
	}
	return tiles
}

// geocentricMesh returns a copy of m with ECEF vertex positions.
func geocentricMesh(m *n3m.MeshData, coord n3m.Coordinate, p n3m.Projection) (*n3m.MeshData, error) {
	positions, err := n3m.Geocentric(m, coord, p, n3m.GroundScaleOf(p, coord))
	if err != nil {
		return nil, err
	}
	out := *m
	out.Vertices = positions
	out.Normals = nil
	return &out, nil
}

func (c *decodeCmd) decodeOne(ctx context.Context, loader *n3m.Loader, cfg *config.Config, coord n3m.Coordinate, outDir string) error {
	mesh, err := loader.Load(ctx, coord)
	if err != nil {
		return err
	}
	if len(mesh) == 0 {
		return errors.New("tile has no texture blocks")
	}

	native := n3m.ToNativeIndex(coord)
	stem := filepath.Join(outDir, fmt.Sprintf("map_%d_%d_%d", native.Z, native.Y, native.X))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	data := mesh.Merge()
	if cfg.Output.Normals {
		data.ComputeNormals()
	}
	if err := writeOBJFiles(stem, data); err != nil {
		return err
	}

	if cfg.Output.OctNormals {
		if err := os.WriteFile(stem+".nrm", octNormalBytes(data), 0644); err != nil {
			return err
		}
	}

	if cfg.Output.Geocentric {
		ecef, err := geocentricMesh(data, coord, loader.Projection)
		if err != nil {
			return err
		}
		if err := writeOBJFiles(stem+"_ecef", ecef); err != nil {
			return err
		}
	}

	if cfg.Output.RenderBuffer {
		var order binary.ByteOrder = binary.LittleEndian
		if cfg.Output.BigEndian {
			order = binary.BigEndian
		}
		if err := os.WriteFile(stem+".bin", mesh.RenderBuffer(order), 0644); err != nil {
			return err
		}
	}
	return nil
}
