package exec_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/xymaxim/ypdl/internal/exec"
	"github.com/xymaxim/ypdl/internal/testutil"
)

func getShellCommand(script string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd.exe", []string{"/c", script}
	}
	return "sh", []string{"-c", script}
}

// captureConsoleOutput captures stdout/stderr during test.
func captureConsoleOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr
	t.Cleanup(func() {
		os.Stdout = oldStdout
		os.Stderr = oldStderr
	})

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()

	os.Stdout = wOut
	os.Stderr = wErr

	fn()

	wOut.Close()
	wErr.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	io.Copy(&stdoutBuf, rOut)
	io.Copy(&stderrBuf, rErr)

	return stdoutBuf.String(), stderrBuf.String()
}

func TestCommandRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	shell, args := getShellCommand(`printf "test"`)
	runner := exec.NewCommandRunner(shell)

	gotConsoleStdout, _ := captureConsoleOutput(t, func() {
		if err := runner.Run(context.Background(), args...); err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	})

	wantConsoleStdout := shell + ": test\n"
	if diff := cmp.Diff(wantConsoleStdout, gotConsoleStdout); diff != "" {
		t.Errorf("console stdout mismatch %s", testutil.PrintWantGot(diff))
	}
}

func TestCommandRunner_Name(t *testing.T) {
	runner := exec.NewCommandRunner("/usr/bin/test-binary")

	if runner.Name != "test-binary" {
		t.Errorf("expected name 'test-binary', got: %q", runner.Name)
	}

	if runtime.GOOS == "windows" {
		runner = exec.NewCommandRunner(`C:\Program Files\test-binary.exe`)
		if runner.Name != "test-binary.exe" {
			t.Errorf("expected name 'test-binary.exe', got: %q", runner.Name)
		}
	}
}

func TestCommandRunner_RunWith_Quiet(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	shell, args := getShellCommand(
		`printf "stdout line 1\nstdout line 2\n" && printf "stderr line 1\nstderr line 2\n" 1>&2`,
	)
	runner := exec.NewCommandRunner(shell)

	gotConsoleStdout, gotConsoleStderr := captureConsoleOutput(t, func() {
		got, err := runner.RunWith(context.Background(), []exec.Option{exec.WithQuiet()}, args...)
		if err != nil {
			t.Fatalf("RunWith() error = %v, want nil", err)
		}
		if diff := cmp.Diff(
			[]byte("stdout line 1\nstdout line 2\n"),
			got.Stdout,
		); diff != "" {
			t.Errorf("captured stdout mismatch %s", testutil.PrintWantGot(diff))
		}
		if diff := cmp.Diff(
			[]byte("stderr line 1\nstderr line 2\n"),
			got.Stderr,
		); diff != "" {
			t.Errorf("captured stderr mismatch %s", testutil.PrintWantGot(diff))
		}
	})

	if gotConsoleStdout != "" {
		t.Errorf("expected no console stdout, got: %q", gotConsoleStdout)
	}
	if gotConsoleStderr != "" {
		t.Errorf("expected no console stderr, got: %q", gotConsoleStderr)
	}
}

func TestCommandRunner_RunWith_Callbacks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	shell, args := getShellCommand(`printf "line 1\nline 2\n"`)
	runner := exec.NewCommandRunner(shell)

	var lines []string
	gotConsoleStdout, _ := captureConsoleOutput(t, func() {
		_, err := runner.RunWith(
			context.Background(),
			[]exec.Option{
				exec.WithCallbacks(
					func(b []byte) { lines = append(lines, string(b)) },
					runner.PrintCallback(),
				),
			},
			args...,
		)
		if err != nil {
			t.Errorf("RunWith() error = %v, want nil", err)
		}
	})

	if diff := cmp.Diff([]string{"line 1", "line 2"}, lines); diff != "" {
		t.Errorf("captured stdout mismatch %s", testutil.PrintWantGot(diff))
	}
	if gotConsoleStdout != "" {
		t.Errorf("expected no console stdout, got: %q", gotConsoleStdout)
	}
}

func TestCommandRunner_Run_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	shell, args := getShellCommand(`exit 3`)
	runner := exec.NewCommandRunner(shell)

	_, err := runner.RunWith(context.Background(), []exec.Option{exec.WithQuiet()}, args...)
	if err == nil {
		t.Fatal("RunWith() error = nil, want exit error")
	}
	if errors.Is(err, context.Canceled) {
		t.Errorf("RunWith() error = %v, want a non-cancellation error", err)
	}
}

func TestCommandRunner_Run_Cancelled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	shell, args := getShellCommand(`exec sleep 10`)
	runner := exec.NewCommandRunner(shell)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := runner.RunWith(ctx, []exec.Option{exec.WithQuiet()}, args...)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunWith() error = %v, want context.Canceled", err)
	}
}

func TestCommandRunner_Run_AlreadyCancelled(t *testing.T) {
	runner := exec.NewCommandRunner("does-not-matter")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
