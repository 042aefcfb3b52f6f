// Package ui is the terminal chat.
package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"nexus/internal/assistant"
	"nexus/internal/client"
	"nexus/internal/launcher"
	"nexus/internal/response"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Responder answers one turn.
type Responder interface {
	Respond(ctx context.Context, turn assistant.Turn) response.Response
}

// Options configure the chat.
type Options struct {
	AutoOpen  bool // open the primary action of each answer
	Markdown  bool
	Opener    launcher.Opener
	Clipboard launcher.Clipboard
	LoadImage func(path string) (*client.Image, error)
}

type turnDoneMsg struct {
	resp response.Response
}

// Model is the bubbletea model.
type Model struct {
	ctx       context.Context
	responder Responder
	opts      Options
	styles    *Styles

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	md       markdown

	entries   []entry
	pending   *client.Image
	pendingAs string
	last      *response.Response
	busy      bool
	status    string
	ready     bool
	width     int
}

// NewModel creates the chat model.
func NewModel(ctx context.Context, r Responder, opts Options) Model {
	if opts.Opener == nil {
		opts.Opener = launcher.NewSystemOpener()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = launcher.SystemClipboard{}
	}
	if opts.LoadImage == nil {
		opts.LoadImage = client.LoadImage
	}

	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask anything: play a song, call someone, open an app…"
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		ctx:       ctx,
		responder: r,
		opts:      opts,
		styles:    styles,
		input:     ti,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
		status:    "/help for commands",
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 3)
		m.input.Width = max(msg.Width-4, 10)
		if m.opts.Markdown {
			m.md = newMarkdown(msg.Width)
		}
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			cmd := m.submit()
			m.refresh()
			return m, cmd
		case "ctrl+o":
			m.openLast()
			return m, nil
		case "ctrl+y":
			m.copyLast()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case turnDoneMsg:
		m.busy = false
		resp := msg.resp
		m.last = &resp
		m.entries = append(m.entries, entry{response: &resp})
		m.status = hintFor(resp)
		if m.opts.AutoOpen {
			m.openLast()
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles enter: a command, or a new turn.
func (m *Model) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	line := m.input.Value()

	if name, arg, ok := parseCommand(line); ok {
		m.input.SetValue("")
		return m.command(name, arg)
	}

	prompt := strings.TrimSpace(line)
	if prompt == "" && m.pending == nil {
		return nil
	}

	turn := assistant.Turn{Prompt: prompt, Image: m.pending}
	if m.pending != nil {
		turn.Prompt = assistant.ImagePrompt(prompt)
	}

	m.entries = append(m.entries, entry{prompt: turn.Prompt, image: m.pendingAs})
	m.pending, m.pendingAs = nil, ""
	m.input.SetValue("")
	m.busy = true
	m.status = ""

	ctx, responder := m.ctx, m.responder
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return turnDoneMsg{resp: responder.Respond(ctx, turn)}
	})
}

func (m *Model) command(name, arg string) tea.Cmd {
	switch name {
	case "image":
		if arg == "" {
			m.notice("usage: /image <path>", true)
			return nil
		}
		img, err := m.opts.LoadImage(expandHome(arg))
		if err != nil {
			m.notice(err.Error(), true)
			return nil
		}
		m.pending, m.pendingAs = img, filepath.Base(arg)
		m.status = "image attached: " + m.pendingAs
	case "clear":
		m.entries = nil
		m.last = nil
	case "help":
		m.notice(helpText, false)
	case "quit", "exit":
		return tea.Quit
	default:
		m.notice("unknown command: /"+name, true)
	}
	return nil
}

func (m *Model) openLast() {
	if m.last == nil {
		return
	}
	action, err := launcher.OpenPrimary(m.opts.Opener, *m.last)
	switch {
	case errors.Is(err, launcher.ErrNoAction):
		m.status = "nothing to open"
	case err != nil:
		m.status = "open failed: " + err.Error()
	default:
		m.status = "opened " + action.Label
	}
}

func (m *Model) copyLast() {
	if m.last == nil {
		return
	}
	url, err := launcher.CopyPrimary(m.opts.Clipboard, *m.last)
	switch {
	case errors.Is(err, launcher.ErrNoAction):
		m.status = "nothing to copy"
	case err != nil:
		m.status = "copy failed: " + err.Error()
	default:
		m.status = "copied " + url
	}
}

func (m *Model) notice(text string, isError bool) {
	m.entries = append(m.entries, entry{notice: text, isError: isError})
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.entries, m.md, m.styles))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Starting…"
	}

	status := m.status
	if m.busy {
		status = m.spinner.View() + " thinking…"
	}
	if m.pendingAs != "" && !m.busy {
		status = m.styles.Attachment.Render("📎 "+m.pendingAs) + "  " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.styles.StatusBar.Width(m.width).Render(status),
		m.styles.Input.Render(m.input.View()),
	)
}

// hintFor suggests the keys that apply to resp.
func hintFor(resp response.Response) string {
	if _, ok := resp.PrimaryAction(); ok {
		return "ctrl+o open · ctrl+y copy"
	}
	if len(resp.Actions) > 0 {
		return "ctrl+y copy link"
	}
	return ""
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := userHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// Run starts the chat and blocks until it exits.
func Run(ctx context.Context, r Responder, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, r, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

var userHomeDir = os.UserHomeDir
