package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xymaxim/ypdl/internal/exec"
	"github.com/xymaxim/ypdl/internal/fetchers"
	"github.com/xymaxim/ypdl/internal/plan"
	"github.com/xymaxim/ypdl/internal/prompt"
)

const DefaultYtdlpPath = "yt-dlp"

// InterruptMessage is printed once when a run is cancelled by the user.
const InterruptMessage = "\n⚠️  Download interrupted by user. Already downloaded items are preserved."

type App struct {
	Config      *Config
	YtdlpRunner exec.Runner
	Fetcher     fetchers.Backend

	In  io.Reader
	Out io.Writer
}

type Config struct {
	YtdlpPath         string
	FFmpegLocation    string
	AudioCodec        string
	AudioQuality      string
	RestrictFilenames bool
	Debug             bool
}

// SetupLogger installs the default stderr logger. Only warnings and errors
// are shown unless debug is set.
func SetupLogger(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		ReplaceAttr: nil,
		Level:       level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func NewApp(cfg *Config) *App {
	SetupLogger(cfg.Debug)

	if cfg.YtdlpPath == "" {
		cfg.YtdlpPath = DefaultYtdlpPath
	}

	runner := exec.NewCommandRunner(cfg.YtdlpPath)

	var downloadArgs []string
	if cfg.FFmpegLocation != "" {
		downloadArgs = append(downloadArgs, "--ffmpeg-location", cfg.FFmpegLocation)
	}

	return &App{
		Config:      cfg,
		YtdlpRunner: runner,
		Fetcher: &fetchers.YtdlpFetcher{
			Runner:       runner,
			DownloadArgs: downloadArgs,
		},
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

// NewSession prepares an interactive run with the given pre-answers.
func (a *App) NewSession(opts Options) *Session {
	return &Session{
		Fetcher:  a.Fetcher,
		Prompter: prompt.New(a.In, a.Out),
		Out:      a.Out,
		Options:  opts,
		Builder: plan.Builder{
			AudioCodec:        a.Config.AudioCodec,
			AudioQuality:      a.Config.AudioQuality,
			RestrictFilenames: a.Config.RestrictFilenames,
		},
	}
}

// Get runs one interactive session. A cancelled run prints InterruptMessage
// and is not an error.
func (a *App) Get(ctx context.Context, opts Options) error {
	err := a.NewSession(opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(a.Out, InterruptMessage)
		return nil
	}
	return err
}
