package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xymaxim/ypdl/internal/batch"
	"github.com/xymaxim/ypdl/internal/fetchers"
	"github.com/xymaxim/ypdl/internal/input"
	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/plan"
	"github.com/xymaxim/ypdl/internal/prompt"
	"github.com/xymaxim/ypdl/internal/urlutil"
)

var ErrInvalidOption = errors.New("invalid option")

// Options pre-answer the prompts of a session. Zero values mean ask.
type Options struct {
	URL    string
	Format string
	Dir    string
	Limit  int
}

// RunState holds the answers collected for one run.
type RunState struct {
	URL    string
	Format media.OutputFormat
	Limit  int
	Dir    string
}

type Session struct {
	Fetcher  fetchers.Backend
	Prompter *prompt.Prompter
	Out      io.Writer
	Options  Options
	// Builder carries the audio settings; Dir and Format are set per run.
	Builder plan.Builder
}

// Run asks the questions, fetches the media info and downloads either the
// single item or the playlist entries. Backend failures are reported to the
// user and end the run without an error; only cancellation, closed input
// and invalid options are returned.
func (s *Session) Run(ctx context.Context) error {
	state, err := s.collect(ctx)
	if err != nil {
		return err
	}
	slog.Debug(
		"collected answers",
		"url", state.URL,
		"format", state.Format,
		"limit", state.Limit,
		"dir", state.Dir,
	)

	info, err := s.Fetcher.FetchInfo(ctx, state.URL, state.Limit)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, fetchers.ErrUnsupportedURL) {
			fmt.Fprintln(s.Out, "❌ Error: This site is not supported.")
		} else {
			fmt.Fprintf(s.Out, "❌ Download error: %v\n", err)
		}
		return nil
	}

	builder := s.Builder
	builder.Dir = state.Dir
	builder.Format = state.Format

	if info.IsPlaylist() {
		entries := info.Entries
		if state.Limit > 0 && len(entries) > state.Limit {
			entries = entries[:state.Limit]
		}
		orchestrator := &batch.Orchestrator{
			Downloader: s.Fetcher,
			Builder:    &builder,
			Out:        s.Out,
		}
		_, err := orchestrator.Run(ctx, entries)
		return err
	}

	return s.downloadSingle(ctx, &builder, state, info)
}

func (s *Session) downloadSingle(
	ctx context.Context,
	builder *plan.Builder,
	state *RunState,
	info *media.Info,
) error {
	formatID := media.BestFormat
	if !state.Format.IsAudio() {
		var err error
		formatID, err = s.Prompter.SelectFormat(ctx, info.Formats, false)
		if err != nil {
			return err
		}
	}

	p, err := builder.ForSingle(formatID, info.Formats)
	if err != nil {
		return fmt.Errorf("building plan: %w", err)
	}

	if err := s.Fetcher.Download(ctx, p, state.URL); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(s.Out, "❌ Error during download: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.Out, "✅ Download complete!")

	return nil
}

// collect gathers the answers in prompt order: URL, format, limit (for
// playlist URLs only) and destination directory.
func (s *Session) collect(ctx context.Context) (*RunState, error) {
	var (
		state RunState
		err   error
	)

	state.URL = s.Options.URL
	if state.URL == "" {
		if state.URL, err = s.Prompter.AskURL(ctx); err != nil {
			return nil, err
		}
	}

	if s.Options.Format != "" {
		if state.Format, err = input.ParseOutputFormat(s.Options.Format); err != nil {
			return nil, fmt.Errorf("%w: format %q: %w", ErrInvalidOption, s.Options.Format, err)
		}
	} else if state.Format, err = s.Prompter.AskFormat(ctx); err != nil {
		return nil, err
	}

	if urlutil.IsPlaylistURL(state.URL) {
		switch {
		case s.Options.Limit < 0:
			return nil, fmt.Errorf("%w: limit %d: %w", ErrInvalidOption, s.Options.Limit, input.ErrNotPositive)
		case s.Options.Limit > 0:
			state.Limit = s.Options.Limit
		default:
			if state.Limit, err = s.Prompter.AskLimit(ctx); err != nil {
				return nil, err
			}
		}
	}

	if s.Options.Dir != "" {
		dir, ok, err := s.Prompter.CheckPath(ctx, s.Options.Dir)
		if err != nil {
			return nil, err
		}
		if ok {
			state.Dir = dir
			return &state, nil
		}
	}
	if state.Dir, err = s.Prompter.AskPath(ctx); err != nil {
		return nil, err
	}

	return &state, nil
}
