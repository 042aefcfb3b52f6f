package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleBranches(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Classification
	}{
		{
			name: "music",
			json: `{"music":{"platform":"Spotify","query":"Hey Jude"}}`,
			want: Classification{Music: &Music{Platform: "Spotify", Query: "Hey Jude"}},
		},
		{
			name: "youtube",
			json: `{"youtube":{"query":"lofi beats"},"music":null}`,
			want: Classification{YouTube: &YouTube{Query: "lofi beats"}},
		},
		{
			name: "call",
			json: `{"call":{"number":" 555-123-4567 "}}`,
			want: Classification{Call: &Call{Number: "555-123-4567"}},
		},
		{
			name: "website",
			json: `{"website":{"url":"espn.com"}}`,
			want: Classification{Website: &Website{URL: "espn.com"}},
		},
		{
			name: "map",
			json: `{"map":{"query":"coffee near me"}}`,
			want: Classification{Map: &Map{Query: "coffee near me"}},
		},
		{
			name: "openApp",
			json: `{"openApp":{"appName":"facebook"}}`,
			want: Classification{OpenApp: &OpenApp{AppName: "facebook"}},
		},
		{
			name: "webSearch",
			json: `{"webSearch":{"query":"who won"}}`,
			want: Classification{WebSearch: &WebSearch{Query: "who won"}},
		},
		{
			name: "general",
			json: `{"generalResponse":"Because of Rayleigh scattering."}`,
			want: Classification{General: &General{Text: "Because of Rayleigh scattering."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, &tt.want, got)
		})
	}
}

func TestParseSentinels(t *testing.T) {
	got, err := Parse([]byte(`{
		"music": {"platform": "NULL", "query": "null"},
		"youtube": "null",
		"call": {"number": null},
		"generalResponse": "Null"
	}`))
	require.NoError(t, err)

	require.NotNil(t, got.Music)
	assert.Empty(t, got.Music.Platform)
	assert.Empty(t, got.Music.Query)
	assert.Nil(t, got.YouTube)
	require.NotNil(t, got.Call)
	assert.Empty(t, got.Call.Number)
	assert.Nil(t, got.General)
}

func TestParseEmptyGeneralIsPresent(t *testing.T) {
	got, err := Parse([]byte(`{"generalResponse":"   "}`))
	require.NoError(t, err)
	require.NotNil(t, got.General)
	assert.Empty(t, got.General.Text)
}

func TestParseAllNull(t *testing.T) {
	got, err := Parse([]byte(`{"music":null,"youtube":null,"generalResponse":null}`))
	require.NoError(t, err)
	assert.Empty(t, got.Present())
}

func TestParseCodeFence(t *testing.T) {
	got, err := Parse([]byte("```json\n{\"map\":{\"query\":\"Paris\"}}\n```"))
	require.NoError(t, err)
	require.NotNil(t, got.Map)
	assert.Equal(t, "Paris", got.Map.Query)
}

func TestParseEmptyScalarBranchFallsThrough(t *testing.T) {
	for _, input := range []string{
		`{"music":"","call":{"number":"555"}}`,
		`{"music":"  ","call":{"number":"555"}}`,
		`{"music":false,"call":{"number":"555"}}`,
		`{"music":"null","call":{"number":"555"}}`,
	} {
		t.Run(input, func(t *testing.T) {
			got, err := Parse([]byte(input))
			require.NoError(t, err)
			assert.Nil(t, got.Music)
			require.NotNil(t, got.Call)
			assert.Equal(t, "555", got.Call.Number)

			present := got.Present()
			require.NotEmpty(t, present)
			assert.Equal(t, KindCall, present[0])
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		violation bool
	}{
		{"empty", "", false},
		{"not json", "I think you want music", false},
		{"array", `[1,2]`, false},
		{"top null", `null`, true},
		{"branch as string", `{"music":"abc"}`, true},
		{"field as number", `{"call":{"number":5551234}}`, true},
		{"general as object", `{"generalResponse":{"text":"hi"}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.violation {
				assert.ErrorIs(t, err, ErrSchemaViolation)
			}
		})
	}
}

func TestPresentOrder(t *testing.T) {
	c := &Classification{
		General: &General{},
		Music:   &Music{},
		OpenApp: &OpenApp{},
	}
	assert.Equal(t, []Kind{KindMusic, KindOpenApp, KindGeneral}, c.Present())

	var nilClassification *Classification
	assert.Nil(t, nilClassification.Present())
}

func TestKinds(t *testing.T) {
	variants := map[Kind]Intent{
		KindMusic:        Music{},
		KindYouTube:      YouTube{},
		KindCall:         Call{},
		KindWebsite:      Website{},
		KindMap:          Map{},
		KindOpenApp:      OpenApp{},
		KindWebSearch:    WebSearch{},
		KindGeneral:      General{},
		KindUnrecognized: Unrecognized{},
	}
	for kind, v := range variants {
		assert.Equal(t, kind, v.Kind())
	}
}
