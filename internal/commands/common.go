package commands

import (
	"fmt"
	"os/exec"

	"github.com/alecthomas/kong"
)

// CLI is the command-line interface of ypdl. Running it without a command
// starts an interactive download.
type CLI struct {
	Config kong.ConfigFlag `help:"Path to a TOML config file" short:"c"`

	Get     Get     `cmd:"" help:"Download a video or playlist (default)" default:"withargs"`
	Install Install `cmd:"" help:"Download the yt-dlp binary"`
	Version Version `cmd:"" help:"Show version information"`
}

type CommonFlags struct {
	Ytdlp string `help:"Path to the yt-dlp binary" name:"yt-dlp" default:"yt-dlp" env:"YPDL_YTDLP"`
	Debug bool   `help:"Show debug logs" env:"YPDL_DEBUG"`
}

func checkYtdlp(path string) error {
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf(
			"unable to find yt-dlp: %w (run 'ypdl install' to download it)",
			err,
		)
	}
	return nil
}
