package commands

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(
		cli,
		kong.Name("ypdl"),
		kong.Vars{"install_dir": "/opt/bin"},
	)
	require.NoError(t, err)
	return parser
}

func TestCLI_DefaultCommand(t *testing.T) {
	var cli CLI
	parser := newParser(t, &cli)

	ctx, err := parser.Parse([]string{
		"https://www.youtube.com/watch?v=abcdefgh123",
		"--format=mp3",
		"--limit=3",
	})
	require.NoError(t, err)

	assert.Equal(t, "get", ctx.Selected().Name)
	assert.Equal(t, "https://www.youtube.com/watch?v=abcdefgh123", cli.Get.URL)
	assert.Equal(t, "mp3", cli.Get.Format)
	assert.Equal(t, 3, cli.Get.Limit)
	assert.Equal(t, "yt-dlp", cli.Get.Ytdlp)
	assert.Equal(t, "mp3", cli.Get.AudioCodec)
	assert.Equal(t, "192", cli.Get.AudioQuality)
}

func TestCLI_NoArguments(t *testing.T) {
	var cli CLI
	parser := newParser(t, &cli)

	ctx, err := parser.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "get", ctx.Selected().Name)
	assert.Empty(t, cli.Get.URL)
}

func TestCLI_Environment(t *testing.T) {
	t.Setenv("YPDL_YTDLP", "/usr/local/bin/yt-dlp")
	t.Setenv("YPDL_AUDIO_QUALITY", "320")

	var cli CLI
	parser := newParser(t, &cli)

	_, err := parser.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/yt-dlp", cli.Get.Ytdlp)
	assert.Equal(t, "320", cli.Get.AudioQuality)
}

func TestCLI_InstallDefaultDir(t *testing.T) {
	var cli CLI
	parser := newParser(t, &cli)

	ctx, err := parser.Parse([]string{"install"})
	require.NoError(t, err)

	assert.Equal(t, "install", ctx.Selected().Name)
	assert.Equal(t, "/opt/bin", cli.Install.Dir)
}

func TestCLI_InvalidAudioCodec(t *testing.T) {
	var cli CLI
	parser := newParser(t, &cli)

	_, err := parser.Parse([]string{"--audio-codec=avi"})
	require.Error(t, err)
}

func TestCheckYtdlp(t *testing.T) {
	t.Parallel()
	err := checkYtdlp("ypdl-missing-binary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ypdl install")
}
