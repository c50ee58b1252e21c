package testutil

import (
	"context"

	"github.com/xymaxim/ypdl/internal/exec"
)

// FakeRunner replays canned output through the callbacks configured by the
// caller instead of running a process.
type FakeRunner struct {
	Stdout      []byte
	StderrLines []string
	Err         error
	Calls       [][]string
}

func (r *FakeRunner) Run(ctx context.Context, args ...string) error {
	_, err := r.RunWith(ctx, nil, args...)
	return err
}

func (r *FakeRunner) RunWith(
	ctx context.Context,
	options []exec.Option,
	args ...string,
) (*exec.RunResult, error) {
	r.Calls = append(r.Calls, args)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var config exec.RunConfig
	for _, o := range options {
		o(&config)
	}
	if config.OnStdout != nil && len(r.Stdout) > 0 {
		config.OnStdout(r.Stdout)
	}
	if config.OnStderr != nil {
		for _, line := range r.StderrLines {
			config.OnStderr([]byte(line))
		}
	}

	return nil, r.Err
}
