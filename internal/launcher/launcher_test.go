package launcher

import (
	"errors"
	"testing"

	"nexus/internal/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOpener struct {
	opened []string
	err    error
}

func (r *recordingOpener) Open(target string) error {
	r.opened = append(r.opened, target)
	return r.err
}

type recordingClipboard struct {
	text string
}

func (r *recordingClipboard) WriteAll(text string) error {
	r.text = text
	return nil
}

func TestCommand(t *testing.T) {
	name, args := command("darwin", "fb://")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"fb://"}, args)

	name, args = command("linux", "https://a.example/?q=1&x=2")
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"https://a.example/?q=1&x=2"}, args)

	name, args = command("windows", "tel:555")
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", "tel:555"}, args)
}

func TestSystemOpener(t *testing.T) {
	var gotName string
	var gotArgs []string
	o := &SystemOpener{goos: "linux", start: func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}}

	require.NoError(t, o.Open(" spotify:search:abba "))
	assert.Equal(t, "xdg-open", gotName)
	assert.Equal(t, []string{"spotify:search:abba"}, gotArgs)

	assert.ErrorIs(t, o.Open("  "), ErrNoAction)

	failing := &SystemOpener{goos: "linux", start: func(string, ...string) error { return errors.New("not found") }}
	assert.Error(t, failing.Open("https://a.example"))
}

func TestOpenPrimary(t *testing.T) {
	o := &recordingOpener{}

	action, err := OpenPrimary(o, response.WithAction("Calling 1.", "Call 1", "tel:1"))
	require.NoError(t, err)
	assert.Equal(t, "tel:1", action.URL)
	assert.Equal(t, []string{"tel:1"}, o.opened)

	video := response.WithAction("Here is the video.", "Watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	video.VideoReference = "dQw4w9WgXcQ"
	_, err = OpenPrimary(o, video)
	assert.ErrorIs(t, err, ErrNoAction)

	_, err = OpenPrimary(o, response.Text("hi"))
	assert.ErrorIs(t, err, ErrNoAction)
	assert.Len(t, o.opened, 1)
}

func TestCopyPrimary(t *testing.T) {
	c := &recordingClipboard{}

	url, err := CopyPrimary(c, response.WithAction("x", "Open", "fb://"))
	require.NoError(t, err)
	assert.Equal(t, "fb://", url)
	assert.Equal(t, "fb://", c.text)

	video := response.WithAction("v", "Watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	video.VideoReference = "dQw4w9WgXcQ"
	url, err = CopyPrimary(c, video)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", url)

	_, err = CopyPrimary(c, response.Text("nothing"))
	assert.ErrorIs(t, err, ErrNoAction)
}
