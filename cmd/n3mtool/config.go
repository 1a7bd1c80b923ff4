package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/subcommands"

	"github.com/flywave/go-n3m/internal/config"
)

type configCmd struct {
	output string
}

func (c *configCmd) Name() string     { return "config" }
func (c *configCmd) Synopsis() string { return "write the effective configuration as YAML" }
func (c *configCmd) Usage() string {
	return "n3mtool [-config <in.yaml>] config -o <out.yaml>\n"
}
func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "n3mtool.yaml", "Output path")
}

func (c *configCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := cfg.SaveTo(c.output); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Println(c.output)
	return subcommands.ExitSuccess
}
