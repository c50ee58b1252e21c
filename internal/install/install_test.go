package install_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xymaxim/ypdl/internal/install"
	"github.com/xymaxim/ypdl/internal/testutil"
)

var binaryContent = []byte("#!/bin/sh\necho yt-dlp\n")

func newInstaller(ts *httptest.Server, progress io.Writer) *install.Installer {
	installer := install.NewInstaller(progress)
	installer.GOOS = "linux"
	installer.GOARCH = "amd64"
	installer.Client.HTTPClient = testutil.NewClient(ts.URL)
	installer.Client.RetryWaitMin = time.Millisecond
	installer.Client.RetryWaitMax = time.Millisecond
	return installer
}

func TestAssetName(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		goos, goarch string
		want         string
	}{
		{"windows", "amd64", "yt-dlp.exe"},
		{"darwin", "arm64", "yt-dlp_macos"},
		{"linux", "amd64", "yt-dlp_linux"},
		{"linux", "arm64", "yt-dlp_linux_aarch64"},
		{"linux", "arm", "yt-dlp_linux_armv7l"},
		{"linux", "riscv64", "yt-dlp"},
		{"freebsd", "amd64", "yt-dlp"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.goos+"/"+tc.goarch, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, install.AssetName(tc.goos, tc.goarch))
		})
	}
}

func TestInstaller_Install(t *testing.T) {
	t.Parallel()
	var gotPath string
	ts := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write(binaryContent)
		}),
	)
	defer ts.Close()

	var progress bytes.Buffer
	dir := filepath.Join(t.TempDir(), "bin")

	path, err := newInstaller(ts, &progress).Install(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_linux", gotPath)
	assert.Equal(t, filepath.Join(dir, "yt-dlp"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, binaryContent, content)

	if runtime.GOOS != "windows" {
		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), stat.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestInstaller_Install_RetriesServiceUnavailable(t *testing.T) {
	t.Parallel()
	var requestCount int
	ts := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCount++
			if requestCount < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write(binaryContent)
		}),
	)
	defer ts.Close()

	_, err := newInstaller(ts, nil).Install(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 3, requestCount)
}

func TestInstaller_Install_NotFound(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	dir := t.TempDir()
	_, err := newInstaller(ts, nil).Install(context.Background(), dir)
	require.ErrorIs(t, err, install.ErrUnexpectedStatus)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
