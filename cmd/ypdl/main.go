package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/xymaxim/ypdl/internal/commands"
	"github.com/xymaxim/ypdl/internal/config"
	"github.com/xymaxim/ypdl/internal/install"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	kctx := kong.Parse(
		&cli,
		kong.Name("ypdl"),
		kong.Description("Download videos and playlists with yt-dlp"),
		kong.UsageOnError(),
		kong.Configuration(config.TOML, config.DefaultPaths()...),
		kong.Vars{"install_dir": install.DefaultDir()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
