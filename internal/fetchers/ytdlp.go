package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xymaxim/ypdl/internal/exec"
	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/plan"
	"github.com/xymaxim/ypdl/internal/urlutil"
)

const codecNone = "none"

// YtdlpFetcher talks to the yt-dlp binary for both metadata and downloads.
type YtdlpFetcher struct {
	Runner exec.Runner
	// DownloadArgs are appended to every download invocation.
	DownloadArgs []string
}

type format struct {
	FormatID       *string  `json:"format_id"`
	Ext            string   `json:"ext"`
	VideoCodec     *string  `json:"vcodec"`
	AudioCodec     *string  `json:"acodec"`
	Resolution     *string  `json:"resolution"`
	FormatNote     *string  `json:"format_note"`
	FrameRate      *float64 `json:"fps"`
	Filesize       *float64 `json:"filesize"`
	FilesizeApprox *float64 `json:"filesize_approx"`
}

type entry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	WebpageURL string `json:"webpage_url"`
}

type jsonDump struct {
	format
	Type       string   `json:"_type"`
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	WebpageURL string   `json:"webpage_url"`
	Formats    []format `json:"formats"`
	Entries    []*entry `json:"entries"`
}

func (fetcher *YtdlpFetcher) FetchInfo(
	ctx context.Context,
	url string,
	limit int,
) (*media.Info, error) {
	args := []string{"--dump-single-json", "--flat-playlist", "--no-warnings"}
	if limit > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(limit))
	}
	args = append(args, "--", url)

	out, err := fetcher.runCapture(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("dumping media info: %w", err)
	}

	info, err := ParseInfo(out)
	if err != nil {
		return nil, fmt.Errorf("parsing info dump: %w", err)
	}
	slog.Debug(
		"fetched media info",
		"title", info.Title,
		"formats", len(info.Formats),
		"entries", len(info.Entries),
	)

	return info, nil
}

func (fetcher *YtdlpFetcher) Download(ctx context.Context, p *plan.Plan, urls ...string) error {
	args, err := p.Args()
	if err != nil {
		return err
	}
	args = append(args, fetcher.DownloadArgs...)
	args = append(args, "--")
	args = append(args, urls...)

	if err := fetcher.Runner.Run(ctx, args...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("downloading: %w", err)
	}
	return nil
}

// Version returns the version reported by the yt-dlp binary.
func (fetcher *YtdlpFetcher) Version(ctx context.Context) (string, error) {
	out, err := fetcher.runCapture(ctx, "--version")
	if err != nil {
		return "", fmt.Errorf("getting yt-dlp version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// runCapture runs yt-dlp and returns its stdout. On failure, the last
// error line printed by yt-dlp is attached to the returned error.
func (fetcher *YtdlpFetcher) runCapture(ctx context.Context, args ...string) ([]byte, error) {
	var outBuf bytes.Buffer
	var errLines []string

	_, err := fetcher.Runner.RunWith(
		ctx,
		[]exec.Option{
			exec.WithStdoutMode(exec.StreamRaw),
			exec.WithStderrMode(exec.StreamLines),
			exec.WithCallbacks(
				func(chunk []byte) { outBuf.Write(chunk) },
				func(line []byte) {
					slog.Debug("yt-dlp", "stderr", string(line))
					errLines = append(errLines, string(line))
				},
			),
		},
		args...,
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyError(err, errLines)
	}

	return outBuf.Bytes(), nil
}

func classifyError(err error, stderrLines []string) error {
	message := ""
	for i := len(stderrLines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(stderrLines[i])
		if strings.HasPrefix(line, "ERROR:") {
			message = strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
			break
		}
	}

	if strings.Contains(message, "Unsupported URL") {
		return fmt.Errorf("%w: %s", ErrUnsupportedURL, message)
	}
	if message != "" {
		return fmt.Errorf("%s: %w", message, err)
	}
	return err
}

// ParseInfo parses the JSON printed by yt-dlp's --dump-single-json.
func ParseInfo(b []byte) (*media.Info, error) {
	var dump jsonDump
	if err := json.Unmarshal(b, &dump); err != nil {
		return nil, err
	}

	info := &media.Info{
		ID:         dump.ID,
		Title:      dump.Title,
		WebpageURL: dump.WebpageURL,
	}

	if dump.Type == "playlist" || len(dump.Entries) > 0 {
		info.Kind = media.KindPlaylist
		info.Entries = parseEntries(dump.Entries)
		return info, nil
	}

	info.Kind = media.KindSingle
	formats := dump.Formats
	if len(formats) == 0 && dump.format.FormatID != nil {
		// Some extractors report the only format at the top level.
		formats = []format{dump.format}
	}
	for i, f := range formats {
		descriptor, err := parseFormat(f)
		if err != nil {
			slog.Debug("skipping format", "index", i, "err", err)
			continue
		}
		info.Formats = append(info.Formats, descriptor)
	}
	if len(formats) > 0 && len(info.Formats) == 0 {
		return nil, errors.New("no usable formats")
	}

	return info, nil
}

func parseFormat(f format) (media.StreamDescriptor, error) {
	if f.FormatID == nil || *f.FormatID == "" {
		return media.StreamDescriptor{}, errors.New("missing format_id")
	}

	descriptor := media.StreamDescriptor{
		FormatID:   *f.FormatID,
		Ext:        f.Ext,
		HasVideo:   hasCodec(f.VideoCodec),
		HasAudio:   hasCodec(f.AudioCodec),
		Resolution: valueOrEmpty(f.Resolution),
		Note:       valueOrEmpty(f.FormatNote),
		FPS:        f.FrameRate,
	}

	size := f.Filesize
	if size == nil || *size == 0 {
		size = f.FilesizeApprox
	}
	if size != nil && *size > 0 {
		n := int64(*size)
		descriptor.Filesize = &n
	}

	return descriptor, nil
}

func parseEntries(entries []*entry) []media.Entry {
	result := []media.Entry{}
	for _, e := range entries {
		if e == nil || (e.ID == "" && e.URL == "" && e.WebpageURL == "") {
			continue
		}

		var pageURL string
		switch {
		case urlutil.IsHTTPURL(e.WebpageURL):
			pageURL = e.WebpageURL
		case urlutil.IsHTTPURL(e.URL):
			pageURL = e.URL
		}

		title := e.Title
		if title == "" {
			title = e.ID
		}

		result = append(result, media.Entry{ID: e.ID, Title: title, URL: pageURL})
	}
	return result
}

// hasCodec reports whether a codec field denotes a present stream; only the
// literal "none" marks an absent one.
func hasCodec(codec *string) bool {
	return codec == nil || *codec != codecNone
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
