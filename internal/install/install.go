// Package install downloads the yt-dlp release binary.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/schollz/progressbar/v3"
)

const DefaultBaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download"

var ErrUnexpectedStatus = errors.New("unexpected status")

// AssetName returns the name of the release asset for a platform.
func AssetName(goos, goarch string) string {
	switch goos {
	case "windows":
		return "yt-dlp.exe"
	case "darwin":
		return "yt-dlp_macos"
	case "linux":
		switch goarch {
		case "amd64":
			return "yt-dlp_linux"
		case "arm64":
			return "yt-dlp_linux_aarch64"
		case "arm":
			return "yt-dlp_linux_armv7l"
		}
	}
	// Platform-independent zipapp, requires a Python interpreter.
	return "yt-dlp"
}

// BinaryName returns the file name the binary is installed under.
func BinaryName(goos string) string {
	if goos == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func NewClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: 10 * time.Minute}
	client.RetryMax = 3
	client.Logger = slog.Default()
	return client
}

type Installer struct {
	Client  *retryablehttp.Client
	BaseURL string
	GOOS    string
	GOARCH  string
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

func NewInstaller(progress io.Writer) *Installer {
	return &Installer{
		Client:   NewClient(),
		BaseURL:  DefaultBaseURL,
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
		Progress: progress,
	}
}

// Install downloads the release binary into dir, creating it if needed, and
// returns the path of the installed executable. An existing binary is
// replaced only after a complete download.
func (i *Installer) Install(ctx context.Context, dir string) (string, error) {
	asset := AssetName(i.GOOS, i.GOARCH)
	url := i.BaseURL + "/" + asset

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	slog.Debug("downloading release", "url", url)

	resp, err := i.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", asset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s for %s", ErrUnexpectedStatus, resp.Status, url)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	target := filepath.Join(dir, BinaryName(i.GOOS))
	tmp, err := os.CreateTemp(dir, BinaryName(i.GOOS)+".*.part")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var w io.Writer = tmp
	if i.Progress != nil {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetWriter(i.Progress),
			progressbar.OptionSetDescription("Downloading "+asset),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		w = io.MultiWriter(tmp, bar)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", asset, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o755); err != nil {
		return "", fmt.Errorf("making executable: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("moving into place: %w", err)
	}

	return target, nil
}

// DefaultDir returns the per-user binary directory, ~/.local/bin.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "bin")
}
