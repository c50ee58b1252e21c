// Package media holds the metadata model returned by the extraction backend
// and the pure helpers that filter and describe it.
package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xymaxim/ypdl/internal/urlutil"
)

// BestFormat is the sentinel format selector used when no explicit format
// is chosen.
const BestFormat = "best"

// OutputFormat is the output type requested by the user.
type OutputFormat string

const (
	FormatVideo OutputFormat = "mp4"
	FormatAudio OutputFormat = "mp3"
)

func (f OutputFormat) IsAudio() bool {
	return f == FormatAudio
}

type Kind int

const (
	KindSingle Kind = iota
	KindPlaylist
)

// StreamDescriptor describes one downloadable variant of a media item.
type StreamDescriptor struct {
	FormatID   string
	Ext        string
	HasVideo   bool
	HasAudio   bool
	Resolution string
	Note       string
	FPS        *float64
	Filesize   *int64
}

// Entry is a playlist entry summary.
type Entry struct {
	ID    string
	Title string
	URL   string
}

// PageURL returns the explicit page URL of the entry, or one synthesized
// from its ID.
func (e Entry) PageURL() string {
	if e.URL != "" {
		return e.URL
	}
	return urlutil.BuildVideoURL(e.ID)
}

// Info is the result of querying a URL: either a single item with its
// formats or a playlist with its entries.
type Info struct {
	Kind       Kind
	ID         string
	Title      string
	WebpageURL string
	Formats    []StreamDescriptor
	Entries    []Entry
}

func (i *Info) IsPlaylist() bool {
	return i.Kind == KindPlaylist
}

// FindFormat returns the descriptor with the given format ID.
func (i *Info) FindFormat(id string) (StreamDescriptor, bool) {
	return FindFormat(i.Formats, id)
}

func FindFormat(formats []StreamDescriptor, id string) (StreamDescriptor, bool) {
	for _, f := range formats {
		if f.FormatID == id {
			return f, true
		}
	}
	return StreamDescriptor{}, false
}

const (
	mebibyte = 1 << 20
	gibibyte = 1 << 30
)

// FormatFilesize formats a byte count using 1024-based units.
func FormatFilesize(size *int64) string {
	if size == nil || *size == 0 {
		return "Unknown size"
	}
	if *size >= gibibyte {
		return fmt.Sprintf("%.2f GB", float64(*size)/gibibyte)
	}
	return fmt.Sprintf("%.2f MB", float64(*size)/mebibyte)
}

// FilterFormats keeps audio-only streams when audioOnly is set and streams
// carrying video otherwise. The relative order is preserved.
func FilterFormats(formats []StreamDescriptor, audioOnly bool) []StreamDescriptor {
	filtered := []StreamDescriptor{}
	for _, f := range formats {
		if audioOnly {
			if !f.HasVideo && f.HasAudio {
				filtered = append(filtered, f)
			}
		} else if f.HasVideo {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// DescribeFormat renders a numbered, human-readable row for a descriptor.
// The index is 1-based.
func DescribeFormat(index int, f StreamDescriptor) string {
	var desc []string
	for _, part := range []string{f.Note, f.Resolution, formatFPS(f.FPS)} {
		if part != "" {
			desc = append(desc, part)
		}
	}

	fields := []string{
		"format_id=" + f.FormatID,
		"ext=" + f.Ext,
	}
	if len(desc) > 0 {
		fields = append(fields, strings.Join(desc, " "))
	}
	fields = append(fields, FormatFilesize(f.Filesize))

	return fmt.Sprintf("%d: %s", index, strings.Join(fields, " - "))
}

func formatFPS(fps *float64) string {
	if fps == nil || *fps == 0 {
		return ""
	}
	return strconv.FormatFloat(*fps, 'f', -1, 64) + "fps"
}
