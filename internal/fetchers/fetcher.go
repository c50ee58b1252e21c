package fetchers

import (
	"context"
	"errors"

	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/plan"
)

// ErrUnsupportedURL is returned when the backend does not recognize a URL.
var ErrUnsupportedURL = errors.New("unsupported URL")

// Extractor resolves a URL into media metadata. A positive limit caps the
// number of playlist entries.
type Extractor interface {
	FetchInfo(ctx context.Context, url string, limit int) (*media.Info, error)
}

// Downloader performs the download described by a plan.
type Downloader interface {
	Download(ctx context.Context, p *plan.Plan, urls ...string) error
}

type Backend interface {
	Extractor
	Downloader
}
