package logger

import (
	"context"
	"log"
	"log/slog"
	"strings"
)

// NewSlogHandler returns a slog.Handler that forwards records to l.
// If l is nil, it returns nil.
func NewSlogHandler(l *Logger) slog.Handler {
	if l == nil {
		return nil
	}
	return &slogAdapter{log: l}
}

// StdLogger returns a *log.Logger (e.g. for http.Server.ErrorLog) whose
// lines end up in l at the given level
func StdLogger(l *Logger, level slog.Level) *log.Logger {
	if l == nil {
		l = Global()
	}
	return slog.NewLogLogger(NewSlogHandler(l), level)
}

type slogAdapter struct {
	log    *Logger
	groups []string
	attrs  []groupedAttr
}

// groupedAttr remembers the groups that were open when the attr was added
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func (h *slogAdapter) Enabled(_ context.Context, level slog.Level) bool {
	return fromSlogLevel(level) >= h.log.GetLevel()
}

func (h *slogAdapter) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)

	for _, ga := range h.attrs {
		writeAttr(&sb, ga.attr, ga.groups)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, attr, h.groups)
		return true
	})

	message := sb.String()
	switch fromSlogLevel(record.Level) {
	case LevelError:
		h.log.Error("%s", message)
	case LevelWarn:
		h.log.Warn("%s", message)
	case LevelInfo:
		h.log.Info("%s", message)
	default:
		h.log.Debug("%s", message)
	}
	return nil
}

func (h *slogAdapter) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	for _, attr := range attrs {
		combined = append(combined, groupedAttr{groups: h.groups, attr: attr})
	}
	return &slogAdapter{
		log:    h.log,
		groups: append([]string(nil), h.groups...),
		attrs:  combined,
	}
}

func (h *slogAdapter) WithGroup(name string) slog.Handler {
	groups := append([]string(nil), h.groups...)
	if name != "" {
		groups = append(groups, name)
	}
	return &slogAdapter{
		log:    h.log,
		groups: groups,
		attrs:  append([]groupedAttr(nil), h.attrs...),
	}
}

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarn
	case level >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}

// writeAttr appends " group.key=value", flattening nested groups
func writeAttr(sb *strings.Builder, attr slog.Attr, groups []string) {
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		nested := append(append([]string(nil), groups...), attr.Key)
		for _, inner := range attr.Value.Group() {
			writeAttr(sb, inner, nested)
		}
		return
	}

	key := attr.Key
	if key == "" {
		key = "attr"
	}
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	for _, g := range groups {
		sb.WriteString(g)
		sb.WriteByte('.')
	}
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(attr.Value.String())
}
