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

type tileJSONCmd struct {
	name    string
	minzoom int
	maxzoom int
}

func (c *tileJSONCmd) Name() string     { return "tilejson" }
func (c *tileJSONCmd) Synopsis() string { return "print a TileJSON description of the tileset" }
func (c *tileJSONCmd) Usage() string {
	return "n3mtool tilejson [-name <name> -minzoom <z> -maxzoom <z>]\n"
}
func (c *tileJSONCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "n3m", "Tileset name")
	f.IntVar(&c.minzoom, "minzoom", n3m.LUTZoom, "Minimum zoom")
	f.IntVar(&c.maxzoom, "maxzoom", 19, "Maximum zoom")
}

func (c *tileJSONCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	endpoint, err := n3m.NewEndpoint(cfg.Source.Endpoint)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	data, err := n3m.NewTileJson(c.name, c.minzoom, c.maxzoom, endpoint).Marshal()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(data))
	return subcommands.ExitSuccess
}
