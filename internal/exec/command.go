package exec

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	execpkg "os/exec"
	"path/filepath"
	"sync"
	"time"
)

// waitDelay bounds how long Wait blocks on output after the process is gone.
const waitDelay = 2 * time.Second

type StreamMode int

const (
	StreamRaw StreamMode = iota
	StreamLines
)

// Runner defines the interface for executing commands.
type Runner interface {
	Run(ctx context.Context, args ...string) error
	RunWith(ctx context.Context, options []Option, args ...string) (*RunResult, error)
}

// RunResult contains the captured output from a command.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// RunConfig configures command execution.
type RunConfig struct {
	Stdin         io.Reader
	OnStdout      func([]byte)
	OnStderr      func([]byte)
	StdoutMode    StreamMode
	StderrMode    StreamMode
	CaptureOutput bool
	stdout        *bytes.Buffer
	stderr        *bytes.Buffer
}

// Option is a functional option for configuring RunConfig.
type Option func(*RunConfig)

// WithStdin sets an io.Reader as stdin for the command.
func WithStdin(r io.Reader) Option {
	return func(o *RunConfig) {
		o.Stdin = r
	}
}

// WithQuiet captures stdout and stderr instead of printing them.
func WithQuiet() Option {
	return func(o *RunConfig) {
		o.CaptureOutput = true
		o.stdout = &bytes.Buffer{}
		o.stderr = &bytes.Buffer{}
		o.StdoutMode = StreamRaw
		o.StderrMode = StreamRaw
		o.OnStdout = func(chunk []byte) { o.stdout.Write(chunk) }
		o.OnStderr = func(chunk []byte) { o.stderr.Write(chunk) }
	}
}

// WithStdoutMode sets the stream mode for stdout.
func WithStdoutMode(mode StreamMode) Option {
	return func(o *RunConfig) {
		o.StdoutMode = mode
	}
}

// WithStderrMode sets the stream mode for stderr.
func WithStderrMode(mode StreamMode) Option {
	return func(o *RunConfig) {
		o.StderrMode = mode
	}
}

// WithCallbacks sets custom handlers for both stdout and stderr lines.
func WithCallbacks(onStdout, onStderr func([]byte)) Option {
	return func(o *RunConfig) {
		o.OnStdout = onStdout
		o.OnStderr = onStderr
	}
}

// CommandRunner executes actual commands.
type CommandRunner struct {
	Path string
	Name string
}

// NewCommandRunner creates a new CommandRunner with binary path.
func NewCommandRunner(path string) *CommandRunner {
	return &CommandRunner{Path: path, Name: filepath.Base(path)}
}

// Run executes the command with the given arguments and prints output to stdout.
func (r *CommandRunner) Run(ctx context.Context, args ...string) error {
	_, err := r.RunWith(ctx, nil, args...)
	return err
}

// RunWith executes the command with functional options and returns captured
// output if requested. If ctx is cancelled, the process is killed and the
// context error is returned.
func (r *CommandRunner) RunWith(
	ctx context.Context,
	options []Option,
	args ...string,
) (*RunResult, error) {
	config := RunConfig{
		OnStdout:   r.PrintCallback(),
		OnStderr:   r.PrintCallback(),
		StdoutMode: StreamLines,
		StderrMode: StreamLines,
	}

	for _, o := range options {
		o(&config)
	}

	err := r.runWithConfig(ctx, config, args...)

	var result *RunResult
	if config.CaptureOutput {
		result = &RunResult{
			Stdout: config.stdout.Bytes(),
			Stderr: config.stderr.Bytes(),
		}
	}

	return result, err
}

func (r *CommandRunner) PrintCallback() func([]byte) {
	lastWasCR := false
	return func(b []byte) {
		if len(b) == 0 {
			return
		}
		if b[len(b)-1] == '\r' {
			fmt.Printf("\r%s: %s", r.Name, b[:len(b)-1])
			lastWasCR = true
		} else {
			if lastWasCR {
				fmt.Printf("\r%s: %s\n", r.Name, b)
				lastWasCR = false
			} else {
				fmt.Printf("%s: %s\n", r.Name, b)
			}
		}
	}
}

func (r *CommandRunner) runWithConfig(ctx context.Context, config RunConfig, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.Debug("running command", "name", r.Name, "args", args)
	cmd := execpkg.CommandContext(ctx, r.Path, args...) // #nosec: G204

	if config.Stdin != nil {
		cmd.Stdin = config.Stdin
	}

	stdoutReader, stdoutWriter := io.Pipe()
	stderrReader, stderrWriter := io.Pipe()
	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter
	// Grandchildren (e.g. ffmpeg) may keep the output open after a kill.
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		stdoutWriter.Close()
		stderrWriter.Close()
		return fmt.Errorf("starting command: %w", err)
	}

	var wg sync.WaitGroup
	handle := func(p io.Reader, h func([]byte), mode StreamMode) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h == nil {
				io.Copy(io.Discard, p)
				return
			}
			switch mode {
			case StreamRaw:
				streamRaw(p, h)
			default:
				streamLines(p, h)
			}
		}()
	}

	handle(stdoutReader, config.OnStdout, config.StdoutMode)
	handle(stderrReader, config.OnStderr, config.StderrMode)

	err := cmd.Wait()
	stdoutWriter.Close()
	stderrWriter.Close()
	wg.Wait()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("running command: %w", err)
	}
	return nil
}

func streamRaw(pipe io.Reader, handler func([]byte)) {
	buf := make([]byte, 4096)
	for {
		n, err := pipe.Read(buf)
		if n > 0 {
			handler(buf[:n])
		}
		if err != nil {
			break
		}
	}
}

func streamLines(pipe io.Reader, handler func([]byte)) {
	reader := bufio.NewReader(pipe)
	var buf bytes.Buffer
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if buf.Len() > 0 {
				handler(buf.Bytes())
			}
			break
		}
		switch b {
		case '\n':
			handler(buf.Bytes())
			buf.Reset()
		case '\r':
			handler(append(buf.Bytes(), '\r'))
			buf.Reset()
		default:
			buf.WriteByte(b)
		}
	}
}
