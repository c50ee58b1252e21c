package urlutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xymaxim/ypdl/internal/urlutil"
)

func TestIsPlaylistURL(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "playlist page",
			url:      "https://www.youtube.com/playlist?list=PL123",
			expected: true,
		},
		{
			name:     "video shared from a playlist",
			url:      "https://www.youtube.com/watch?v=abc&list=PL123",
			expected: true,
		},
		{
			name:     "other site playlist path",
			url:      "https://example.com/playlists/42",
			expected: true,
		},
		{
			name:     "single video",
			url:      "https://www.youtube.com/watch?v=abc",
			expected: false,
		},
		{
			name:     "short link",
			url:      "https://youtu.be/abc",
			expected: false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, urlutil.IsPlaylistURL(tc.url))
		})
	}
}

func TestIsHTTPURL(t *testing.T) {
	t.Parallel()
	assert.True(t, urlutil.IsHTTPURL("https://www.youtube.com/watch?v=abc"))
	assert.True(t, urlutil.IsHTTPURL("http://example.com/a"))
	assert.False(t, urlutil.IsHTTPURL("abc"))
	assert.False(t, urlutil.IsHTTPURL("ytsearch:cats"))
	assert.False(t, urlutil.IsHTTPURL(""))
}

func TestBuildVideoURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", urlutil.BuildVideoURL("abc"))
}
