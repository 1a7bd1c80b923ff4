package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	n3m "github.com/flywave/go-n3m"
	"github.com/flywave/go-n3m/internal/config"
)

type pathCmd struct {
	tile tileFlags
}

func (c *pathCmd) Name() string     { return "path" }
func (c *pathCmd) Synopsis() string { return "print storage paths and urls of a tile" }
func (c *pathCmd) Usage() string {
	return "n3mtool path (-x <col> -y <row> | -lat <lat> -lon <lon>) [-z <zoom>]\n"
}
func (c *pathCmd) SetFlags(f *flag.FlagSet) { c.tile.register(f) }

func (c *pathCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	coord, err := c.tile.coordinate(n3m.Mercator{})
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	endpoint, err := n3m.NewEndpoint(cfg.Source.Endpoint)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	path, err := n3m.StoragePath(coord)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	meshURL, err := endpoint.MeshURL(coord)
	if err != nil {
		meshURL = err.Error()
	}
	textureURL, err := endpoint.TextureURL(coord)
	if err != nil {
		textureURL = err.Error()
	}
	lutURL, err := endpoint.LUTURL(coord)
	if err != nil {
		lutURL = err.Error()
	}
	offset, err := n3m.MipmapOffset(coord)
	lutEntry := fmt.Sprint(offset)
	if err != nil {
		lutEntry = err.Error()
	}

	native := n3m.ToNativeIndex(coord)
	fmt.Printf("tile:      %v\n", coord)
	fmt.Printf("native:    x=%d y=%d z=%d\n", native.X, native.Y, native.Z)
	fmt.Printf("shard:     %v\n", n3m.SelectShard(coord))
	fmt.Printf("path:      %s\n", path)
	fmt.Printf("mesh:      %s\n", meshURL)
	fmt.Printf("texture:   %s\n", textureURL)
	fmt.Printf("lut:       %s\n", lutURL)
	fmt.Printf("lut entry: %s\n", lutEntry)
	return subcommands.ExitSuccess
}
