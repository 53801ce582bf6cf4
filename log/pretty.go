package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's output, so color is dropped automatically
// when that output is not a terminal.
type palette struct {
	key, str, num, on, off, dur, when, null lipgloss.Style

	trace, debug, info, warn, fail lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		on:   fg("2"),
		off:  fg("1"),
		dur:  fg("5"),
		when: fg("4"),
		null: fg("8"),

		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		fail:  fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyCore is the state shared by both pretty handlers.
type prettyCore struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	attrs  []slog.Attr // preformatted by WithAttrs
	groups []string
}

func newPrettyCore(w io.Writer, opts *slog.HandlerOptions) prettyCore {
	return prettyCore{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  newPalette(w),
	}
}

func (c prettyCore) enabled(level slog.Level) bool {
	minLevel := slog.LevelInfo
	if c.opts.Level != nil {
		minLevel = c.opts.Level.Level()
	}

	return level >= minLevel
}

func (c prettyCore) withAttrs(attrs []slog.Attr) prettyCore {
	next := c
	next.attrs = make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	next.attrs = append(next.attrs, c.attrs...)

	for _, a := range attrs {
		if a = c.replace(c.groups, a); a.Key != "" {
			next.attrs = append(next.attrs, c.qualify(a))
		}
	}

	return next
}

func (c prettyCore) withGroup(name string) prettyCore {
	if name == "" {
		return c
	}

	next := c
	next.groups = append(c.groups[:len(c.groups):len(c.groups)], name)

	return next
}

// qualify prefixes the attribute key with the open groups.
func (c prettyCore) qualify(a slog.Attr) slog.Attr {
	if len(c.groups) > 0 {
		a.Key = strings.Join(c.groups, ".") + "." + a.Key
	}

	return a
}

// replace resolves a and passes it through the configured ReplaceAttr.
func (c prettyCore) replace(groups []string, a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if c.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = c.opts.ReplaceAttr(groups, a)
	}

	return a
}

// builtins returns the time, level, source, and message attributes of r
// after replacement.
func (c prettyCore) builtins(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		attrs = append(attrs, slog.Time(slog.TimeKey, r.Time))
	}

	attrs = append(attrs, slog.Any(slog.LevelKey, r.Level))

	if c.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			attrs = append(attrs,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))

	out := attrs[:0]
	for _, a := range attrs {
		// levels keep their type so they can be styled by severity
		if a.Key == slog.LevelKey {
			out = append(out, a)

			continue
		}

		if a = c.replace(nil, a); a.Key != "" {
			out = append(out, a)
		}
	}

	return out
}

// record returns every attribute of r in output order.
func (c prettyCore) record(r slog.Record) []slog.Attr {
	attrs := c.builtins(r)
	attrs = append(attrs, c.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		if a = c.replace(c.groups, a); a.Key != "" {
			attrs = append(attrs, c.qualify(a))
		}

		return true
	})

	return attrs
}

func (c prettyCore) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.w.Write(buf.Bytes())

	return err
}

// scalar renders a non-group value with its style.
func (c prettyCore) scalar(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return c.pal.str.Render(v.String())

	case slog.KindInt64:
		return c.pal.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return c.pal.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return c.pal.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return c.pal.on.Render("true")
		}

		return c.pal.off.Render("false")

	case slog.KindDuration:
		return c.pal.dur.Render(v.Duration().String())

	case slog.KindTime:
		return c.pal.when.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return c.pal.null.Render("null")
		case slog.Level:
			return c.pal.level(a).Render(strings.ToUpper(Level(a).String()))
		case error:
			return c.pal.off.Render(a.Error())
		}
	}

	return c.pal.str.Render(v.String())
}

// prettyTextHandler implements a colorized key=value handler.
type prettyTextHandler struct{ prettyCore }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyCore(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.record(r) {
		h.writeAttr(buf, "", a)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// writeAttr writes a as key=value, flattening groups into dotted keys.
func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	key := prefix + a.Key

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			key += "."
		}

		for _, sub := range a.Value.Group() {
			if sub = h.replace(nil, sub); sub.Key != "" {
				h.writeAttr(buf, key, sub)
			}
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.pal.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.scalar(a.Value))
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
// String values are written unquoted for readability.
type prettyJSONHandler struct{ prettyCore }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyCore(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	h.writeObject(buf, 0, h.record(r))

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeObject(
	buf *bytes.Buffer,
	depth int,
	attrs []slog.Attr,
) {
	indent := strings.Repeat("  ", depth+1)

	buf.WriteString("{\n")

	for i, a := range attrs {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString(indent)
		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			group := make([]slog.Attr, 0, len(a.Value.Group()))
			for _, sub := range a.Value.Group() {
				if sub = h.replace(nil, sub); sub.Key != "" {
					group = append(group, sub)
				}
			}

			h.writeObject(buf, depth+1, group)

			continue
		}

		buf.WriteString(h.scalar(a.Value))
	}

	buf.WriteByte('\n')
	buf.WriteString(indent[:len(indent)-2])
	buf.WriteByte('}')
}
