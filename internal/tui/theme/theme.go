package theme

import (
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
)

// IconSet represents a collection of icons keyed by semantic usage.
type IconSet map[string]string

// clone returns a copy of the icon set to avoid shared mutation across themes.
func (s IconSet) clone() IconSet {
	if s == nil {
		return nil
	}
	clone := make(IconSet, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// Colors holds the shared color palette used for console output.
type Colors struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// StatusKind enumerates supported status line variants.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusWarning
	StatusError
)

// Theme centralizes palette, renderer and icon configuration.
type Theme struct {
	colors   Colors
	renderer *lipgloss.Renderer
	icons    IconSet
	fallback IconSet
}

// Option configures a Theme during construction.
type Option func(*Theme)

// WithIconSet overrides the icon set used by the theme.
func WithIconSet(set IconSet) Option {
	return func(t *Theme) {
		t.icons = set.clone()
	}
}

// WithColors overrides the base color palette.
func WithColors(colors Colors) Option {
	return func(t *Theme) {
		t.colors = colors
	}
}

// WithRenderer binds styles to a renderer, so color support is detected
// for the writer the renderer was created for.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(t *Theme) {
		t.renderer = r
	}
}

// New constructs a Theme with optional overrides applied.
func New(opts ...Option) Theme {
	defaults := []Option{
		WithColors(Colors{
			Primary: lipgloss.Color("#3a6b4a"),
			Accent:  lipgloss.Color("#8fc279"),
			Warning: lipgloss.Color("#e5c07b"),
			Error:   lipgloss.Color("#f04c56"),
		}),
		WithIconSet(defaultIconSet()),
	}

	t := Theme{fallback: asciiIcons.clone()}

	for _, opt := range append(defaults, opts...) {
		opt(&t)
	}

	if t.icons == nil {
		t.icons = defaultIconSet()
	}
	if t.renderer == nil {
		t.renderer = lipgloss.DefaultRenderer()
	}

	return t
}

// Colors exposes the theme color palette.
func (t Theme) Colors() Colors {
	return t.colors
}

// Icon returns a themed icon with ASCII fallback if unavailable.
func (t Theme) Icon(name string) string {
	if icon, ok := t.icons[name]; ok {
		return icon
	}
	if icon, ok := t.fallback[name]; ok {
		return icon
	}
	return ""
}

// IconSet returns a defensive copy of the themed icon map.
func (t Theme) IconSet() IconSet {
	return t.icons.clone()
}

// HeaderStyle returns the style used for section headers such as "Results:".
func (t Theme) HeaderStyle() lipgloss.Style {
	return t.renderer.NewStyle().Bold(true)
}

// KeyStyle highlights the hotkey letters of a menu.
func (t Theme) KeyStyle() lipgloss.Style {
	return t.renderer.NewStyle().Bold(true).Foreground(t.colors.Accent)
}

// StatusStyle returns the foreground style for a status line variant.
func (t Theme) StatusStyle(kind StatusKind) lipgloss.Style {
	base := t.renderer.NewStyle()

	switch kind {
	case StatusWarning:
		return base.Foreground(t.colors.Warning)
	case StatusError:
		return base.Foreground(t.colors.Error)
	default:
		return base.Foreground(t.colors.Primary)
	}
}

// defaultIconSet chooses the best icon set for the current terminal.
func defaultIconSet() IconSet {
	if isLimitedTerminal() {
		return asciiIcons.clone()
	}
	return emojiIcons.clone()
}

// isLimitedTerminal detects environments where ASCII icons are preferable.
func isLimitedTerminal() bool {
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" {
		return true
	}
	return runtime.GOOS == "windows"
}

var emojiIcons = IconSet{
	"movie":   "🎬",
	"show":    "📺",
	"episode": "🎞",
	"person":  "👤",
	"warning": "⚠️",
	"error":   "❌",
}

var asciiIcons = IconSet{
	"movie":   "[M]",
	"show":    "[TV]",
	"episode": "[E]",
	"person":  "[P]",
	"warning": "[!]",
	"error":   "[x]",
}
