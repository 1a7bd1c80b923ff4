package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to YAML config file")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&pathCmd{}, "")
	subcommands.Register(&decodeCmd{}, "")
	subcommands.Register(&tileJSONCmd{}, "")
	subcommands.Register(&configCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
