package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"hello world", "hello%20world"},
		{"AZaz09-_.!~*'()", "AZaz09-_.!~*'()"},
		{"a+b", "a%2Bb"},
		{"rock & roll", "rock%20%26%20roll"},
		{"q=1/2?#", "q%3D1%2F2%3F%23"},
		{"café", "caf%C3%A9"},
		{"50%", "50%25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Component(tt.in), "input %q", tt.in)
	}
}

func TestBuilders(t *testing.T) {
	assert.Equal(t, "https://www.google.com/search?q=play%20Hey%20Jude%20on%20Apple%20Music",
		GoogleSearch("play Hey Jude on Apple Music"))
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=coffee%20near%20me",
		GoogleMaps("coffee near me"))
	assert.Equal(t, "spotify:search:Bohemian%20Rhapsody", SpotifySearch("Bohemian Rhapsody"))
	assert.Equal(t, "tel:555-123-4567", Tel("555-123-4567"))
	assert.Equal(t, "tel:+15551234567", Tel(" +1 555 123\t4567 "))
}
