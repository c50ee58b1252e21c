// Package plan builds the yt-dlp download configuration for a single
// download attempt.
package plan

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/pathutil"
)

const (
	DefaultAudioCodec   = "mp3"
	DefaultAudioQuality = "192"
	MergeFormat         = "mp4"
)

var (
	ErrNoStrategy            = errors.New("no selection strategy")
	ErrConflictingStrategies = errors.New("conflicting selection strategies")
	ErrUnknownFormat         = errors.New("unknown format id")
	ErrMissingOutputTemplate = errors.New("missing output template")
)

// Strategy is the stream selection strategy of a plan.
type Strategy int

const (
	StrategyUnset Strategy = iota
	// StrategyExplicit downloads exactly the chosen format.
	StrategyExplicit
	// StrategyMerge downloads the chosen video-only format plus the best
	// audio and merges them into one container.
	StrategyMerge
	// StrategyBestAudio downloads the best audio stream, optionally
	// transcoding it.
	StrategyBestAudio
	// StrategyBest downloads the best mp4 stream, or the best overall.
	StrategyBest
)

func (s Strategy) String() string {
	switch s {
	case StrategyExplicit:
		return "explicit"
	case StrategyMerge:
		return "merge"
	case StrategyBestAudio:
		return "bestaudio"
	case StrategyBest:
		return "best"
	default:
		return "unset"
	}
}

// Transcode requests post-download audio extraction.
type Transcode struct {
	Codec   string
	Quality string
}

// Plan is a fully specified download configuration.
type Plan struct {
	Strategy          Strategy
	FormatID          string
	OutputTemplate    string
	MergeFormat       string
	Transcode         *Transcode
	IgnoreErrors      bool
	RestrictFilenames bool
}

// Validate checks that exactly one selection strategy is active.
func (p *Plan) Validate() error {
	if p.OutputTemplate == "" {
		return ErrMissingOutputTemplate
	}

	switch p.Strategy {
	case StrategyExplicit:
		if p.FormatID == "" {
			return fmt.Errorf("%w: explicit strategy without format id", ErrNoStrategy)
		}
		if p.MergeFormat != "" || p.Transcode != nil {
			return fmt.Errorf("%w: explicit format with merge or transcode", ErrConflictingStrategies)
		}
	case StrategyMerge:
		if p.FormatID == "" || p.MergeFormat == "" {
			return fmt.Errorf("%w: merge strategy without format id or container", ErrNoStrategy)
		}
		if p.Transcode != nil {
			return fmt.Errorf("%w: merge with transcode", ErrConflictingStrategies)
		}
	case StrategyBestAudio:
		if p.FormatID != "" || p.MergeFormat != "" {
			return fmt.Errorf("%w: best audio with explicit format or merge", ErrConflictingStrategies)
		}
	case StrategyBest:
		if p.FormatID != "" || p.MergeFormat != "" || p.Transcode != nil {
			return fmt.Errorf("%w: best with explicit format, merge or transcode", ErrConflictingStrategies)
		}
	default:
		return ErrNoStrategy
	}

	return nil
}

// Selector renders the yt-dlp format selector of the plan.
func (p *Plan) Selector() string {
	switch p.Strategy {
	case StrategyExplicit:
		return p.FormatID
	case StrategyMerge:
		return p.FormatID + "+bestaudio/best"
	case StrategyBestAudio:
		return "bestaudio/best"
	case StrategyBest:
		return "best[ext=mp4]/best"
	default:
		return ""
	}
}

// Args renders the yt-dlp command-line arguments of the plan, without URLs.
func (p *Plan) Args() ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating plan: %w", err)
	}

	args := []string{
		"--format", p.Selector(),
		"--output", p.OutputTemplate,
		"--newline",
	}
	if p.MergeFormat != "" {
		args = append(args, "--merge-output-format", p.MergeFormat)
	}
	if p.Transcode != nil {
		args = append(
			args,
			"--extract-audio",
			"--audio-format", p.Transcode.Codec,
			"--audio-quality", p.Transcode.Quality+"K",
		)
	}
	if p.IgnoreErrors {
		args = append(args, "--ignore-errors")
	}
	if p.RestrictFilenames {
		args = append(args, "--restrict-filenames")
	}

	return args, nil
}

// Builder builds plans for the choices made in one run.
type Builder struct {
	Dir               string
	Format            media.OutputFormat
	AudioCodec        string
	AudioQuality      string
	RestrictFilenames bool
}

func (b *Builder) transcode() *Transcode {
	codec, quality := b.AudioCodec, b.AudioQuality
	if codec == "" {
		codec = DefaultAudioCodec
	}
	if quality == "" {
		quality = DefaultAudioQuality
	}
	return &Transcode{Codec: codec, Quality: quality}
}

// ForSingle builds the plan for a single item. For video output, formatID
// is either media.BestFormat or the ID of one of formats.
func (b *Builder) ForSingle(formatID string, formats []media.StreamDescriptor) (*Plan, error) {
	p := &Plan{
		OutputTemplate:    filepath.Join(b.Dir, "%(title)s.%(ext)s"),
		IgnoreErrors:      true,
		RestrictFilenames: b.RestrictFilenames,
	}

	switch {
	case b.Format.IsAudio():
		p.Strategy = StrategyBestAudio
		p.Transcode = b.transcode()
	case formatID == media.BestFormat:
		p.Strategy = StrategyBest
	default:
		f, ok := media.FindFormat(formats, formatID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, formatID)
		}
		p.FormatID = formatID
		if f.HasVideo && !f.HasAudio {
			p.Strategy = StrategyMerge
			p.MergeFormat = MergeFormat
		} else {
			p.Strategy = StrategyExplicit
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ForEntry builds the plan for the 1-based index-th playlist entry. Entry
// plans always select the best audio stream and transcode it only for mp3
// output.
func (b *Builder) ForEntry(index int, entry media.Entry) (*Plan, error) {
	title := "%(title)s"
	if b.RestrictFilenames && entry.Title != "" {
		if adjusted := pathutil.AdjustForFilename(entry.Title, 100); adjusted != "" {
			title = adjusted
		}
	}

	p := &Plan{
		Strategy:       StrategyBestAudio,
		OutputTemplate: filepath.Join(b.Dir, fmt.Sprintf("%02d - %s.%%(ext)s", index, title)),
	}
	if b.Format.IsAudio() {
		p.Transcode = b.transcode()
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
