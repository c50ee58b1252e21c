package pathutil_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xymaxim/ypdl/internal/pathutil"
)

//nolint:paralleltest
func TestAdjustForFilename(t *testing.T) {
	testCases := []struct {
		name     string
		s        string
		length   int
		expected string
	}{
		{
			name:     "french title with default length",
			s:        "En direct : Titre de la   vidéo — 24h/7 | Panorama, 360 / ? ",
			length:   0,
			expected: "En-direct-Titre-de-la-video",
		},
		{
			name:     "french title with full length",
			s:        "En direct : Titre de la   vidéo — 24h/7 | Panorama, 360 / ? ",
			length:   1000,
			expected: "En-direct-Titre-de-la-video-24h-7-Panorama-360",
		},
		{
			name:     "title with path separators",
			s:        "AC/DC - Back In Black (Official Video)",
			length:   1000,
			expected: "AC-DC-Back-In-Black-Official-Video",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pathutil.AdjustForFilename(tc.s, tc.length))
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "bare tilde", path: "~", expected: home},
		{name: "tilde prefix", path: "~/Music", expected: filepath.Join(home, "Music")},
		{name: "absolute path", path: "/tmp/x", expected: "/tmp/x"},
		{name: "relative path", path: "downloads", expected: "downloads"},
		{name: "tilde inside name", path: "~user/x", expected: "~user/x"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pathutil.ExpandHome(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
