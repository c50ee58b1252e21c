// Package prompt implements the validated console questions of a run. Every
// read observes a context, so an interrupt unblocks a pending question.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/xymaxim/ypdl/internal/input"
	"github.com/xymaxim/ypdl/internal/media"
	"github.com/xymaxim/ypdl/internal/pathutil"
)

// ErrInputClosed is returned when the input ends before a valid answer.
var ErrInputClosed = errors.New("input closed")

type line struct {
	text string
	err  error
}

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan line

	// Getwd resolves the directory used for an empty path answer.
	Getwd func() (string, error)
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, Getwd: os.Getwd}
}

func (p *Prompter) startReading() {
	p.once.Do(func() {
		p.lines = make(chan line)
		go func() {
			defer close(p.lines)
			scanner := bufio.NewScanner(p.in)
			for scanner.Scan() {
				p.lines <- line{text: scanner.Text()}
			}
			if err := scanner.Err(); err != nil {
				p.lines <- line{err: err}
			}
		}()
	})
}

// ask prints the question and waits for one line of input.
func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	p.startReading()
	fmt.Fprint(p.out, question)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("reading input: %w", l.err)
		}
		return l.text, nil
	}
}

func (p *Prompter) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// AskURL asks for a non-empty media URL.
func (p *Prompter) AskURL(ctx context.Context) (string, error) {
	for {
		answer, err := p.ask(ctx, "Enter the video URL: ")
		if err != nil {
			return "", err
		}
		if url := strings.TrimSpace(answer); url != "" {
			return url, nil
		}
		p.println("URL cannot be empty.")
	}
}

// AskFormat asks for the output format until mp4 or mp3 is given.
func (p *Prompter) AskFormat(ctx context.Context) (media.OutputFormat, error) {
	for {
		answer, err := p.ask(ctx, "Choose format (mp4 for video, mp3 for audio): ")
		if err != nil {
			return "", err
		}
		format, err := input.ParseOutputFormat(answer)
		if err == nil {
			return format, nil
		}
		p.println("Invalid format. Please enter 'mp4' or 'mp3'.")
	}
}

// AskLimit asks how many playlist items to download. Zero means all.
func (p *Prompter) AskLimit(ctx context.Context) (int, error) {
	for {
		answer, err := p.ask(ctx, "How many items to download? (press Enter for all): ")
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(answer) == "" {
			return 0, nil
		}
		limit, err := input.ParsePositiveInt(answer)
		if err == nil {
			return limit, nil
		}
		p.println("Please enter a positive number.")
	}
}

// AskPath asks for the destination directory. An empty answer selects the
// working directory; a missing directory is created after confirmation.
func (p *Prompter) AskPath(ctx context.Context) (string, error) {
	for {
		answer, err := p.ask(ctx, "Download path (press Enter for current directory): ")
		if err != nil {
			return "", err
		}

		path := strings.TrimSpace(answer)
		if path == "" {
			dir, err := p.Getwd()
			if err != nil {
				return "", fmt.Errorf("getting working directory: %w", err)
			}
			return dir, nil
		}

		dir, ok, err := p.CheckPath(ctx, path)
		if err != nil {
			return "", err
		}
		if ok {
			return dir, nil
		}
	}
}

// CheckPath validates a candidate destination directory, asking to create it
// if it does not exist. It reports false when the candidate was rejected and
// another path should be asked for.
func (p *Prompter) CheckPath(ctx context.Context, path string) (string, bool, error) {
	dir, err := pathutil.ExpandHome(path)
	if err != nil {
		p.println("Could not expand path:", err)
		return "", false, nil
	}

	stat, err := os.Stat(dir)
	switch {
	case err == nil && stat.IsDir():
		return dir, true, nil
	case err == nil:
		p.println("Path exists but is not a directory.")
		return "", false, nil
	case !errors.Is(err, fs.ErrNotExist):
		p.println("Could not access path:", err)
		return "", false, nil
	}

	answer, err := p.ask(ctx, "Directory does not exist. Create it? (y/n): ")
	if err != nil {
		return "", false, err
	}
	if !input.ParseConfirmation(answer) {
		p.println("Please enter a different path.")
		return "", false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		p.println("Could not create directory:", err)
		return "", false, nil
	}
	p.println("Created directory:", dir)

	return dir, true, nil
}

// ChooseQuality prints the numbered rows and returns the 0-based index of
// the chosen one.
func (p *Prompter) ChooseQuality(ctx context.Context, rows []string) (int, error) {
	p.println()
	p.println("Available qualities:")
	for _, row := range rows {
		p.println(row)
	}

	for {
		answer, err := p.ask(ctx, "Select quality (number): ")
		if err != nil {
			return -1, err
		}
		index, err := input.ParseChoice(answer, len(rows))
		if err == nil {
			return index, nil
		}
		p.println("Invalid choice. Try again.")
	}
}

// SelectFormat filters formats and lets the user choose one, returning its
// format ID. If no format survives the filter, media.BestFormat is returned
// without asking.
func (p *Prompter) SelectFormat(
	ctx context.Context,
	formats []media.StreamDescriptor,
	audioOnly bool,
) (string, error) {
	filtered := media.FilterFormats(formats, audioOnly)
	if len(filtered) == 0 {
		p.println("⚠️  No matching formats found, falling back to best available.")
		return media.BestFormat, nil
	}

	rows := make([]string, 0, len(filtered))
	for i, f := range filtered {
		rows = append(rows, media.DescribeFormat(i+1, f))
	}

	index, err := p.ChooseQuality(ctx, rows)
	if err != nil {
		return "", err
	}

	return filtered[index].FormatID, nil
}
