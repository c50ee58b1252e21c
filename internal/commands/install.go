package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/xymaxim/ypdl/internal/app"
	"github.com/xymaxim/ypdl/internal/install"
)

type Install struct {
	Dir   string `help:"Directory to install into" default:"${install_dir}" type:"path" short:"d"`
	Debug bool   `help:"Show debug logs" env:"YPDL_DEBUG"`
}

func (c *Install) Run(ctx context.Context) error {
	app.SetupLogger(c.Debug)

	fmt.Printf("(<<) Downloading yt-dlp into %s...\n", c.Dir)
	path, err := install.NewInstaller(os.Stderr).Install(ctx, c.Dir)
	if err != nil {
		return fmt.Errorf("installing yt-dlp: %w", err)
	}
	fmt.Printf("Installed %s\n", path)

	if found, err := exec.LookPath(filepath.Base(path)); err != nil || found != path {
		fmt.Printf("%s is not first in PATH; pass --yt-dlp=%s to use it.\n", c.Dir, path)
	}

	return nil
}
