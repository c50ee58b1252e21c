// Package batch downloads playlist entries one by one.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xymaxim/ypdl/internal/fetchers"
	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/plan"
)

// Result counts the outcome of a batch run.
type Result struct {
	Total      int
	Downloaded int
	Failed     int
}

// Orchestrator downloads entries sequentially. A failed entry is reported
// and skipped; cancellation of the context stops the whole batch.
type Orchestrator struct {
	Downloader fetchers.Downloader
	Builder    *plan.Builder
	Out        io.Writer
}

// Run downloads entries in order. On cancellation, it returns the partial
// result together with the context error.
func (o *Orchestrator) Run(ctx context.Context, entries []media.Entry) (Result, error) {
	result := Result{Total: len(entries)}
	fmt.Fprintf(o.Out, "Found %d items in playlist.\n", result.Total)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, o.interrupted(result, err)
		}

		index := i + 1
		fmt.Fprintf(o.Out, "\n[%d/%d] Downloading: %s\n", index, result.Total, entry.Title)

		err := o.download(ctx, index, entry)
		if ctx.Err() != nil {
			return result, o.interrupted(result, ctx.Err())
		}
		if err != nil {
			slog.Debug("entry failed", "index", index, "id", entry.ID, "err", err)
			fmt.Fprintf(o.Out, "❌ Failed to download %s: %v\n", entry.Title, err)
			result.Failed++
			continue
		}

		result.Downloaded++
		fmt.Fprintf(o.Out, "✅ Downloaded: %s\n", entry.Title)
	}

	fmt.Fprintf(o.Out, "\nDone. Downloaded %d of %d items.\n", result.Downloaded, result.Total)

	return result, nil
}

func (o *Orchestrator) download(ctx context.Context, index int, entry media.Entry) error {
	p, err := o.Builder.ForEntry(index, entry)
	if err != nil {
		return fmt.Errorf("building plan: %w", err)
	}
	return o.Downloader.Download(ctx, p, entry.PageURL())
}

func (o *Orchestrator) interrupted(result Result, err error) error {
	fmt.Fprintf(o.Out, "\nInterrupted. %d item(s) were downloaded.\n", result.Downloaded)
	return err
}
