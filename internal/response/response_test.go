package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryAction(t *testing.T) {
	t.Run("first action", func(t *testing.T) {
		r := Response{Actions: []Action{{Label: "a", URL: "tel:1"}, {Label: "b", URL: "tel:2"}}}
		a, ok := r.PrimaryAction()
		require.True(t, ok)
		assert.Equal(t, "tel:1", a.URL)
	})

	t.Run("no actions", func(t *testing.T) {
		_, ok := Text("hello").PrimaryAction()
		assert.False(t, ok)
	})

	t.Run("video suppresses auto invoke", func(t *testing.T) {
		r := WithAction("video", "Watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		r.VideoReference = "dQw4w9WgXcQ"
		_, ok := r.PrimaryAction()
		assert.False(t, ok)
		assert.True(t, r.HasVideo())
	})
}

func TestJSONOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Text("Sorry, I encountered an error. Please try again."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Sorry, I encountered an error. Please try again."}`, string(data))

	data, err = json.Marshal(WithAction("Calling 1.", "Call 1", "tel:1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"Calling 1.","actions":[{"label":"Call 1","url":"tel:1"}]}`, string(data))
}
