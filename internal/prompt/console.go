// Package prompt implements the interactive console: single-key menus,
// free-text prompts with defaults and styled status lines.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Digital-Shane/trakt-watch/internal/tui/keymenu"
	"github.com/Digital-Shane/trakt-watch/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ErrAborted is returned when the user explicitly quits or input ends.
var ErrAborted = errors.New("aborted")

// KeyReader reads a single keypress after showing prompt.
type KeyReader func(prompt string) (string, error)

// Console reads user input and writes everything interactive (menus,
// prompts, result lists, status lines) to a single writer, normally
// stderr, so that command results on stdout stay machine-readable.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// endLine terminates each answer with a newline when the input is
	// not a terminal and so was never echoed.
	endLine bool

	theme   theme.Theme
	readKey KeyReader
	log     zerolog.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithKeyReader replaces the single-key reader.
func WithKeyReader(fn KeyReader) Option {
	return func(c *Console) {
		c.readKey = fn
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Console) {
		c.log = l
	}
}

// WithTheme replaces the theme derived from the output writer.
func WithTheme(t theme.Theme) Option {
	return func(c *Console) {
		c.theme = t
	}
}

// New creates a console reading from in and writing to out. When in is a
// terminal, single keys are read with a bubbletea key menu; otherwise the
// first character of the next line is used.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:      bufio.NewReader(in),
		out:     out,
		endLine: true,
		theme:   theme.New(theme.WithRenderer(lipgloss.NewRenderer(out))),
		log:     zerolog.Nop(),
	}
	c.readKey = c.readKeyLine
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		c.endLine = false
		c.readKey = func(p string) (string, error) {
			return keymenu.Read(p, f, out, c.theme.HeaderStyle())
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Theme returns the theme bound to the output writer.
func (c *Console) Theme() theme.Theme {
	return c.theme
}

// Key renders a menu hotkey such as "[M]".
func (c *Console) Key(k string) string {
	return c.theme.KeyStyle().Render("[" + k + "]")
}

// Println writes a line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Header writes a bold line.
func (c *Console) Header(msg string) {
	fmt.Fprintln(c.out, c.theme.HeaderStyle().Render(msg))
}

// Info writes a status line.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.theme.StatusStyle(theme.StatusInfo).Render(msg))
}

// Warn writes a warning line.
func (c *Console) Warn(msg string) {
	c.status("warning", theme.StatusWarning, msg)
}

// Error writes an error line.
func (c *Console) Error(msg string) {
	c.status("error", theme.StatusError, msg)
}

func (c *Console) status(icon string, kind theme.StatusKind, msg string) {
	line := c.theme.StatusStyle(kind).Render(msg)
	if i := c.theme.Icon(icon); i != "" {
		line = i + " " + line
	}
	fmt.Fprintln(c.out, line)
}

// ReadKey shows prompt and returns the single key the user pressed, or ""
// for a blank key.
func (c *Console) ReadKey(prompt string) (string, error) {
	k, err := c.readKey(prompt)
	if errors.Is(err, keymenu.ErrInterrupted) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	c.log.Debug().Str("key", k).Msg("key pressed")
	return k, nil
}

func (c *Console) readKeyLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	return string([]rune(line)[0]), nil
}

// Prompt asks for a line of text. An empty answer returns def; with no
// default, the question is repeated until something is entered.
func (c *Console) Prompt(label, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(c.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(c.out, "%s: ", label)
		}

		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if def != "" {
			return def, nil
		}
	}
}

// PromptNumber asks for a non-negative integer, repeating the question
// until one is entered.
func (c *Console) PromptNumber(label string) (int, error) {
	for {
		answer, err := c.Prompt(label, "")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 0 {
			c.Error(fmt.Sprintf("Error: '%s' is not a valid non-negative integer.", answer))
			continue
		}
		return n, nil
	}
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(c.out)
		return "", ErrAborted
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if c.endLine {
		fmt.Fprintln(c.out)
	}
	return line, nil
}
