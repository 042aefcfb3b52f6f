package apps

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"instagram", "instagram://", true},
		{"facebook", "fb://", true},
		{"x", "twitter://", true},
		{"uber eats", "ubereats://", true},
		{"spotify", "spotify:", true},
		{"nonexistent app", "", false},
		{"Instagram", "", false},
		{" instagram", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeThenLookup(t *testing.T) {
	scheme, ok := Lookup(Normalize("  WhatsApp "))
	assert.True(t, ok)
	assert.Equal(t, "whatsapp://", scheme)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "google maps")
	for _, name := range names {
		assert.Equal(t, Normalize(name), name, "registry key %q is not normalized", name)
	}
}
