package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// TeeHandler 将同一条记录分发到多个 Handler，各自按级别过滤
type TeeHandler struct {
	handlers []log.Handler
}

// NewTeeHandler 组合多个 Handler
func NewTeeHandler(handlers ...log.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (s *TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range s.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *TeeHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range s.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return s.each(func(h log.Handler) log.Handler { return h.WithAttrs(attrs) })
}

func (s *TeeHandler) WithGroup(name string) log.Handler {
	return s.each(func(h log.Handler) log.Handler { return h.WithGroup(name) })
}

func (s *TeeHandler) each(fn func(log.Handler) log.Handler) *TeeHandler {
	newHandlers := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		newHandlers[i] = fn(h)
	}
	return &TeeHandler{handlers: newHandlers}
}

// RemoteFilterHandler 远程日志只接收请求链路内（带 trace_id）的记录，
// 以及 MinLevel 及以上的记录（启动失败等）
type RemoteFilterHandler struct {
	next     log.Handler
	minLevel log.Level
}

// NewRemoteFilterHandler minLevel 及以上的记录不要求 trace_id
func NewRemoteFilterHandler(next log.Handler, minLevel log.Level) *RemoteFilterHandler {
	return &RemoteFilterHandler{next: next, minLevel: minLevel}
}

func (s *RemoteFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *RemoteFilterHandler) Handle(ctx context.Context, r log.Record) error {
	if r.Level >= s.minLevel || TraceID(ctx) != "" || hasTraceAttr(r) {
		return s.next.Handle(ctx, r)
	}
	return nil
}

func (s *RemoteFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithAttrs(attrs), minLevel: s.minLevel}
}

func (s *RemoteFilterHandler) WithGroup(name string) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithGroup(name), minLevel: s.minLevel}
}

func hasTraceAttr(r log.Record) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			found = true
			return false
		}
		return true
	})
	return found
}
