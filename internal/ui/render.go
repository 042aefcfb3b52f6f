package ui

import (
	"fmt"
	"strings"

	"nexus/internal/response"
	"nexus/internal/video"

	"github.com/charmbracelet/glamour"
)

// entry is one transcript item.
type entry struct {
	prompt   string
	image    string // attached file name, if any
	response *response.Response
	notice   string
	isError  bool
}

// markdown renders model text. It falls back to the raw text.
type markdown func(text string) string

func newMarkdown(width int) markdown {
	wrap := width - 4
	if wrap < 20 {
		wrap = 0
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return func(text string) string {
		out, err := renderer.Render(text)
		if err != nil {
			return text
		}
		return strings.Trim(out, "\n")
	}
}

// renderResponse lays out text, video, actions and sources.
func renderResponse(resp response.Response, md markdown, s *Styles) string {
	var b strings.Builder

	text := resp.Text
	if md != nil {
		b.WriteString(md(text))
	} else {
		b.WriteString(s.AssistantText.Render(text))
	}

	if resp.HasVideo() {
		b.WriteString("\n")
		b.WriteString(s.Video.Render("▶ " + video.WatchURL(resp.VideoReference)))
	}

	for i, action := range resp.Actions {
		marker := "  "
		if i == 0 {
			marker = "→ "
		}
		b.WriteString("\n")
		b.WriteString(marker)
		b.WriteString(s.ActionLabel.Render(action.Label))
		b.WriteString(" ")
		b.WriteString(s.ActionURL.Render(action.URL))
	}

	if len(resp.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Dim.Render("Sources:"))
		for i, src := range resp.Sources {
			b.WriteString("\n")
			b.WriteString(s.Source.Render(fmt.Sprintf("[%d] %s", i+1, src.Title)))
			if src.Title != src.URI {
				b.WriteString(" ")
				b.WriteString(s.Dim.Render(src.URI))
			}
		}
	}

	return b.String()
}

func renderEntry(e entry, md markdown, s *Styles) string {
	switch {
	case e.response != nil:
		return renderResponse(*e.response, md, s)
	case e.notice != "" && e.isError:
		return s.Error.Render("✗ " + e.notice)
	case e.notice != "":
		return s.Dim.Render(e.notice)
	}

	line := s.UserPrompt.Render("› " + e.prompt)
	if e.image != "" {
		line += " " + s.Attachment.Render("["+e.image+"]")
	}
	return line
}

func renderTranscript(entries []entry, md markdown, s *Styles) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, renderEntry(e, md, s))
	}
	return strings.Join(parts, "\n\n")
}

// parseCommand splits "/name arg..." input. ok is false for plain prompts.
func parseCommand(line string) (name, arg string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return "", "", false
	}
	name, arg, _ = strings.Cut(line[1:], " ")
	return strings.ToLower(name), strings.TrimSpace(arg), true
}

const helpText = `Commands:
  /image <path>  attach an image to the next message
  /clear         clear the transcript
  /help          show this help
  /quit          exit

Keys: enter send · ctrl+o open action · ctrl+y copy link · pgup/pgdn scroll · ctrl+c quit`

// Render formats a single response for non-interactive output.
func Render(resp response.Response, useMarkdown bool, width int) string {
	var md markdown
	if useMarkdown {
		md = newMarkdown(width)
	}
	return renderResponse(resp, md, DefaultStyles())
}
