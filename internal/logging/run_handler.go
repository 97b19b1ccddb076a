package logging

import (
	"context"
	"log/slog"
)

// runIDHandler stamps every record with the invocation's run ID unless the
// logger or record already carries one.
type runIDHandler struct {
	base    slog.Handler
	runID   string
	present bool
}

func newRunIDHandler(base slog.Handler, runID string) slog.Handler {
	if base == nil {
		return NoopHandler{}
	}
	return &runIDHandler{base: base, runID: runID}
}

func (h *runIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *runIDHandler) Handle(ctx context.Context, record slog.Record) error {
	if !h.present && !recordHasKey(record, FieldRunID) {
		record.AddAttrs(slog.String(FieldRunID, h.runID))
	}
	return h.base.Handle(ctx, record)
}

func (h *runIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	present := h.present
	for _, attr := range attrs {
		if attr.Key == FieldRunID {
			present = true
		}
	}
	return &runIDHandler{base: h.base.WithAttrs(attrs), runID: h.runID, present: present}
}

func (h *runIDHandler) WithGroup(name string) slog.Handler {
	return &runIDHandler{base: h.base.WithGroup(name), runID: h.runID, present: h.present}
}

func recordHasKey(record slog.Record, key string) bool {
	found := false
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
