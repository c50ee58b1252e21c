package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xymaxim/ypdl/internal/exec"
	"github.com/xymaxim/ypdl/internal/fetchers"
	versionpkg "github.com/xymaxim/ypdl/internal/version"
)

type Version struct {
	Short bool   `help:"Show only the version number" short:"s"`
	Ytdlp string `help:"Path to the yt-dlp binary" name:"yt-dlp" default:"yt-dlp" env:"YPDL_YTDLP"`
}

func (c *Version) Run(ctx context.Context) error {
	if c.Short {
		fmt.Println(versionpkg.GetShort())
		return nil
	}

	fmt.Println(versionpkg.GetFull())

	fetcher := &fetchers.YtdlpFetcher{Runner: exec.NewCommandRunner(c.Ytdlp)}
	ytdlpVersion, err := fetcher.Version(ctx)
	if err != nil {
		slog.Debug("yt-dlp version unavailable", "err", err)
		fmt.Println("yt-dlp not found")
		return nil
	}
	fmt.Println("yt-dlp version " + ytdlpVersion)

	return nil
}
