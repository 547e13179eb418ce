package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Handler writes one plain line per record for a terminal: level, message,
// then key=value attributes. There is no timestamp; a run is short and
// interactive. On a color-capable writer the level and message are colored.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	prefix string // preformatted WithAttrs output
	groups []string

	palette *palette
}

// palette holds the colors per level: cyan for detail, green for progress,
// yellow for warnings and red for errors.
type palette struct {
	detail, progress, warn, err, key *color.Color
}

func newPalette() *palette {
	return &palette{
		detail:   color.New(color.FgCyan),
		progress: color.New(color.FgGreen),
		warn:     color.New(color.FgYellow),
		err:      color.New(color.FgRed, color.Bold),
		key:      color.New(color.FgHiBlack),
	}
}

func (p *palette) forLevel(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.progress
	default:
		return p.detail
	}
}

// NewHandler returns a Handler writing to out. Only opts.Level is used.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{
		level: slog.LevelInfo,
		out:   out,
		mu:    &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if SupportsColor(out) {
		h.palette = newPalette()
	}
	return h
}

// Enabled reports whether level is at or above the handler's minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r as "LEVEL message key=value ...".
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	label := padRight(levelName(r.Level), 5)
	msg := r.Message
	if h.palette != nil {
		c := h.palette.forLevel(r.Level)
		label = c.Sprint(label)
		msg = c.Sprint(msg)
	}
	b.WriteString(label)
	b.WriteByte(' ')
	b.WriteString(msg)
	b.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.groups, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) appendAttr(b *strings.Builder, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		nested := groups
		if a.Key != "" {
			nested = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, nested, ga)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if h.palette != nil {
		key = h.palette.key.Sprint(key)
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

// formatValue quotes strings that would be ambiguous in key=value form,
// such as paths containing spaces.
func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// WithAttrs returns a Handler that appends attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		h.appendAttr(&b, h.groups, a)
	}
	newH := *h
	newH.prefix = b.String()
	return &newH
}

// WithGroup returns a Handler whose later attribute keys are prefixed with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(append([]string(nil), h.groups...), name)
	return &newH
}
