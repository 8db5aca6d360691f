// Package notify is the toast channel of the application: components report
// completions and failures through it, but nothing they do depends on whether
// the message was seen. Implementations must never block or panic into the
// caller.
package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Kind classifies a notification.
type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notifier receives fire-and-forget user-facing messages.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

var (
	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

// Terminal writes styled one-line notifications to a writer.
type Terminal struct {
	Out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{Out: out}
}

func (t *Terminal) Notify(kind Kind, title, message string) {
	if t == nil || t.Out == nil {
		return
	}
	style := infoStyle
	prefix := "✓"
	if kind == KindError {
		style = errorStyle
		prefix = "✗"
	}
	// Write errors are swallowed: a broken pipe must not take down a mutation.
	fmt.Fprintf(t.Out, "%s %s\n", style.Render(prefix+" "+title), message)
}

// Logger forwards notifications to a zerolog logger, for --verbose runs and
// non-interactive use.
type Logger struct {
	Log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{Log: log}
}

func (l *Logger) Notify(kind Kind, title, message string) {
	if l == nil {
		return
	}
	ev := l.Log.Info()
	if kind == KindError {
		ev = l.Log.Warn()
	}
	ev.Str("title", title).Msg(message)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(Kind, string, string) {}

// Event is a captured notification, used by Recorder.
type Event struct {
	Kind    Kind
	Title   string
	Message string
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Notify(kind Kind, title, message string) {
	r.Events = append(r.Events, Event{Kind: kind, Title: title, Message: message})
}

// Tee fans a notification out to several sinks.
type Tee []Notifier

func (t Tee) Notify(kind Kind, title, message string) {
	for _, n := range t {
		if n != nil {
			n.Notify(kind, title, message)
		}
	}
}
