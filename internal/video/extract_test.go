package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"long form", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short form", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed form", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"v path", "youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"extra query params", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"no scheme", "www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"surrounded by prose", "Sure! Here it is: https://youtu.be/dQw4w9WgXcQ. Enjoy", "dQw4w9WgXcQ", true},
		{"hyphen and underscore", "https://youtu.be/a-b_c-d_e-f", "a-b_c-d_e-f", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"whitespace", "   \n", "", false},
		{"id too short", "https://youtu.be/abc123", "", false},
		{"other site", "https://vimeo.com/watch?v=dQw4w9WgXcQ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/results?search_query=lofi%20hip%20hop", SearchURL("lofi hip hop"))
	assert.Equal(t, "https://www.youtube.com/results?search_query=AC%2FDC%20live", SearchURL("AC/DC live"))
}
