package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"nexus/internal/assistant"
	"nexus/internal/client"
	"nexus/internal/response"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponder struct {
	mu    sync.Mutex
	turns []assistant.Turn
	reply response.Response
}

func (f *fakeResponder) Respond(_ context.Context, turn assistant.Turn) response.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns = append(f.turns, turn)
	return f.reply
}

type recordingOpener struct{ opened []string }

func (o *recordingOpener) Open(target string) error {
	o.opened = append(o.opened, target)
	return nil
}

type recordingClipboard struct{ text string }

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(r Responder, opts Options) Model {
	if opts.Opener == nil {
		opts.Opener = &recordingOpener{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &recordingClipboard{}
	}
	m := NewModel(context.Background(), r, opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func typeAndSubmit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestParseCommand(t *testing.T) {
	name, arg, ok := parseCommand("  /Image  ~/shot.png ")
	require.True(t, ok)
	assert.Equal(t, "image", name)
	assert.Equal(t, "~/shot.png", arg)

	_, _, ok = parseCommand("play despacito")
	assert.False(t, ok)
}

func TestRenderResponse(t *testing.T) {
	s := DefaultStyles()
	resp := response.Response{
		Text:    "Here is what I found.",
		Actions: []response.Action{{Label: "Search on Google", URL: "https://www.google.com/search?q=go"}},
		Sources: []response.Source{
			{URI: "https://go.dev", Title: "The Go Programming Language"},
			{URI: "https://pkg.go.dev", Title: "https://pkg.go.dev"},
		},
	}

	out := renderResponse(resp, nil, s)
	assert.Contains(t, out, "Here is what I found.")
	assert.Contains(t, out, "Search on Google")
	assert.Contains(t, out, "https://www.google.com/search?q=go")
	assert.Contains(t, out, "[1] The Go Programming Language")
	assert.Equal(t, 1, strings.Count(out, "https://pkg.go.dev"))
}

func TestRenderResponseVideo(t *testing.T) {
	resp := response.WithAction("Playing it.", "Watch on YouTube", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	resp.VideoReference = "dQw4w9WgXcQ"

	out := renderResponse(resp, func(s string) string { return "md:" + s }, DefaultStyles())
	assert.Contains(t, out, "md:Playing it.")
	assert.Contains(t, out, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
}

func TestSubmitRunsTurn(t *testing.T) {
	r := &fakeResponder{reply: response.WithAction("Calling 555.", "Call 555", "tel:555")}
	m := newTestModel(r, Options{})

	m, cmd := typeAndSubmit(t, m, "call 555")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Empty(t, m.input.Value())

	updated, _ := m.Update(turnDoneMsg{resp: r.Respond(context.Background(), assistant.Turn{Prompt: "call 555"})})
	m = updated.(Model)
	assert.False(t, m.busy)
	require.NotNil(t, m.last)
	assert.Equal(t, "Calling 555.", m.last.Text)
	assert.Len(t, m.entries, 2)
}

func TestSubmitIgnoresEmptyAndBusy(t *testing.T) {
	m := newTestModel(&fakeResponder{}, Options{})

	m, cmd := typeAndSubmit(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, m.entries)

	m.busy = true
	_, cmd = typeAndSubmit(t, m, "hello")
	assert.Nil(t, cmd)
}

func TestImageCommandAttachesToNextTurn(t *testing.T) {
	img := &client.Image{Data: []byte{1}, MIMEType: "image/png"}
	m := newTestModel(&fakeResponder{}, Options{
		LoadImage: func(path string) (*client.Image, error) {
			assert.Equal(t, "/tmp/shot.png", path)
			return img, nil
		},
	})

	m, cmd := typeAndSubmit(t, m, "/image /tmp/shot.png")
	assert.Nil(t, cmd)
	assert.Same(t, img, m.pending)
	assert.Equal(t, "shot.png", m.pendingAs)

	m, cmd = typeAndSubmit(t, m, "")
	require.NotNil(t, cmd)
	assert.Nil(t, m.pending)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "Describe this image.", m.entries[0].prompt)
	assert.Equal(t, "shot.png", m.entries[0].image)
}

func TestImageCommandErrors(t *testing.T) {
	m := newTestModel(&fakeResponder{}, Options{
		LoadImage: func(string) (*client.Image, error) { return nil, errors.New("no such file") },
	})

	m, _ = typeAndSubmit(t, m, "/image")
	m, _ = typeAndSubmit(t, m, "/image missing.png")
	require.Len(t, m.entries, 2)
	assert.True(t, m.entries[0].isError)
	assert.Contains(t, m.entries[1].notice, "no such file")
	assert.Nil(t, m.pending)
}

func TestCommands(t *testing.T) {
	m := newTestModel(&fakeResponder{}, Options{})

	m, _ = typeAndSubmit(t, m, "/help")
	require.Len(t, m.entries, 1)
	assert.Contains(t, m.entries[0].notice, "/image <path>")

	m, _ = typeAndSubmit(t, m, "/bogus")
	assert.True(t, m.entries[1].isError)

	m, _ = typeAndSubmit(t, m, "/clear")
	assert.Empty(t, m.entries)

	_, cmd := typeAndSubmit(t, m, "/quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestOpenAndCopyKeys(t *testing.T) {
	opener := &recordingOpener{}
	clip := &recordingClipboard{}
	m := newTestModel(&fakeResponder{}, Options{Opener: opener, Clipboard: clip})

	updated, _ := m.Update(turnDoneMsg{resp: response.WithAction("Opening Instagram.", "Open Instagram", "instagram://")})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = updated.(Model)
	assert.Equal(t, []string{"instagram://"}, opener.opened)
	assert.Equal(t, "opened Open Instagram", m.status)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = updated.(Model)
	assert.Equal(t, "instagram://", clip.text)
}

func TestAutoOpenSkipsVideo(t *testing.T) {
	opener := &recordingOpener{}
	m := newTestModel(&fakeResponder{}, Options{AutoOpen: true, Opener: opener})

	video := response.WithAction("Here it is.", "Watch on YouTube", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	video.VideoReference = "dQw4w9WgXcQ"
	updated, _ := m.Update(turnDoneMsg{resp: video})
	m = updated.(Model)
	assert.Empty(t, opener.opened)
	assert.Equal(t, "nothing to open", m.status)

	updated, _ = m.Update(turnDoneMsg{resp: response.WithAction("Calling.", "Call", "tel:911")})
	_ = updated.(Model)
	assert.Equal(t, []string{"tel:911"}, opener.opened)
}

func TestExpandHome(t *testing.T) {
	orig := userHomeDir
	t.Cleanup(func() { userHomeDir = orig })
	userHomeDir = func() (string, error) { return "/home/me", nil }

	assert.Equal(t, "/home/me/pics/a.png", expandHome("~/pics/a.png"))
	assert.Equal(t, "rel/a.png", expandHome("rel/a.png"))
}
