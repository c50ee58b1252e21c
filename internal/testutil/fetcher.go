package testutil

import (
	"context"

	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/plan"
)

type DownloadCall struct {
	Plan *plan.Plan
	URLs []string
}

// FakeBackend is an in-memory fetchers.Backend.
type FakeBackend struct {
	Info    *media.Info
	InfoErr error
	// OnDownload is called with the 1-based call number; nil means success.
	OnDownload func(ctx context.Context, call int, p *plan.Plan) error

	InfoCalls []InfoCall
	Downloads []DownloadCall
}

type InfoCall struct {
	URL   string
	Limit int
}

var (
	TestVideoURL    = "https://www.youtube.com/watch?v=abcdefgh123"
	TestPlaylistURL = "https://www.youtube.com/playlist?list=PLabcdefgh"
)

func (b *FakeBackend) FetchInfo(ctx context.Context, url string, limit int) (*media.Info, error) {
	b.InfoCalls = append(b.InfoCalls, InfoCall{URL: url, Limit: limit})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Info, b.InfoErr
}

func (b *FakeBackend) Download(ctx context.Context, p *plan.Plan, urls ...string) error {
	b.Downloads = append(b.Downloads, DownloadCall{Plan: p, URLs: urls})
	if b.OnDownload == nil {
		return nil
	}
	return b.OnDownload(ctx, len(b.Downloads), p)
}

// TestSingleInfo returns a single item with a typical mix of formats.
func TestSingleInfo() *media.Info {
	size := int64(52_428_800)
	fps := 30.0
	return &media.Info{
		Kind:       media.KindSingle,
		ID:         "abcdefgh123",
		Title:      "Test title",
		WebpageURL: TestVideoURL,
		Formats: []media.StreamDescriptor{
			{FormatID: "140", Ext: "m4a", HasAudio: true, Resolution: "audio only", Note: "medium"},
			{FormatID: "18", Ext: "mp4", HasVideo: true, HasAudio: true, Resolution: "640x360", Note: "360p", FPS: &fps},
			{FormatID: "137", Ext: "mp4", HasVideo: true, Resolution: "1920x1080", Note: "1080p", FPS: &fps, Filesize: &size},
		},
	}
}

// TestPlaylistInfo returns a playlist with one entry per title.
func TestPlaylistInfo(titles ...string) *media.Info {
	entries := make([]media.Entry, 0, len(titles))
	for i, title := range titles {
		entries = append(entries, media.Entry{
			ID:    "id" + string(rune('a'+i)),
			Title: title,
		})
	}
	return &media.Info{
		Kind:    media.KindPlaylist,
		ID:      "PLabcdefgh",
		Title:   "Test playlist",
		Entries: entries,
	}
}
