package ui

import "github.com/charmbracelet/lipgloss"

// Colors for the UI theme
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple (Lavender 400)
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan (Cyan 400)
	ColorSuccess   = lipgloss.Color("#059669") // Emerald 600
	ColorWarning   = lipgloss.Color("#D97706") // Amber 600
	ColorError     = lipgloss.Color("#DC2626") // Red 600
	ColorMuted     = lipgloss.Color("#9CA3AF") // Gray 400
	ColorText      = lipgloss.Color("#F1F5F9") // Slate 100
	ColorBorder    = lipgloss.Color("#1E293B") // Slate 800
	ColorAccent    = lipgloss.Color("#F472B6") // Pink 400
	ColorInfo      = lipgloss.Color("#2DD4BF") // Teal 400
)

// Styles holds the chat's lipgloss styles.
type Styles struct {
	Header        lipgloss.Style
	UserPrompt    lipgloss.Style
	AssistantText lipgloss.Style
	ActionLabel   lipgloss.Style
	ActionURL     lipgloss.Style
	Source        lipgloss.Style
	Video         lipgloss.Style
	Attachment    lipgloss.Style
	Error         lipgloss.Style
	Spinner       lipgloss.Style
	StatusBar     lipgloss.Style
	Input         lipgloss.Style
	Dim           lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		UserPrompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),
		AssistantText: lipgloss.NewStyle().
			Foreground(ColorText),
		ActionLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess),
		ActionURL: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Underline(true),
		Source: lipgloss.NewStyle().
			Foreground(ColorInfo),
		Video: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent),
		Attachment: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Spinner: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		StatusBar: lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder),
		Input: lipgloss.NewStyle().
			Foreground(ColorText),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}
