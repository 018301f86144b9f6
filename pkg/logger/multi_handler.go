package logger

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler fans log records out to several handlers.
// A failing destination does not stop delivery to the others.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, rec.Level) {
			continue
		}
		if err := handler.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newMultiHandler(h.each(func(hd slog.Handler) slog.Handler { return hd.WithAttrs(attrs) })...)
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return newMultiHandler(h.each(func(hd slog.Handler) slog.Handler { return hd.WithGroup(name) })...)
}

func (h *multiHandler) each(fn func(slog.Handler) slog.Handler) []slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = fn(handler)
	}
	return out
}
