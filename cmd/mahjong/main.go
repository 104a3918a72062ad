package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"1" help:"Deal a table and play it in the terminal"`
	Layout  LayoutCmd        `cmd:"" help:"Print where every tile lands for a viewport size"`
	Deal    DealCmd          `cmd:"" help:"Shuffle, deal and print the four hands"`
}

func main() {
	// .env is optional; kong reads MAHJONG_* from the environment
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mahjong"),
		kong.Description("Four-hand mahjong table with a mouse-driven terminal view"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
