package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/weathersage/sage/pkg/logger"
)

const maxBodySize = 1 << 20 // 1MB

// Handler runs a procedure.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Procedure adapts a typed function to a Handler. Input is decoded from JSON;
// a missing input decodes to the zero value of I.
//
// Example:
//
//	router.Handle("forecast.summary", query.Procedure(
//	    func(ctx context.Context, _ struct{}) (sage.Summary, error) {
//	        return svc.Summary(ctx)
//	    },
//	))
func Procedure[I, O any](fn func(ctx context.Context, in I) (O, error)) Handler {
	return func(ctx context.Context, input json.RawMessage) (any, error) {
		var in I
		if len(input) > 0 && string(input) != "null" {
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
		}
		return fn(ctx, in)
	}
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithLogger sets the logger used for failed procedures.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// Router maps procedure names to handlers.
type Router struct {
	logger     *slog.Logger
	procedures map[string]Handler
	mu         sync.RWMutex
}

// NewRouter creates an empty router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		logger:     logger.NewNope(),
		procedures: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle registers h under name. Registering a name twice panics.
func (r *Router) Handle(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.procedures[name]; ok {
		panic(fmt.Errorf("%w: %s", ErrDuplicateProcedure, name))
	}
	r.procedures[name] = h
}

// Procedures returns the number of registered procedures.
func (r *Router) Procedures() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.procedures)
}

func (r *Router) invoke(ctx context.Context, name string, input json.RawMessage) (any, error) {
	r.mu.RLock()
	h, ok := r.procedures[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcedure, name)
	}

	out, err := h(ctx, input)
	if err != nil {
		qerr := toError(err)
		if qerr.Status() >= http.StatusInternalServerError {
			r.logger.ErrorContext(ctx, "procedure failed",
				slog.String("procedure", name),
				slog.Any("error", err),
			)
		}
		return nil, err
	}
	return out, nil
}

// Handler serves GET /{procedure}?input={json}. Mount it under DefaultEndpoint.
func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Get("/{procedure}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "procedure")

		var input json.RawMessage
		if v := req.URL.Query().Get("input"); v != "" {
			if !json.Valid([]byte(v)) {
				writeEnvelope(w, http.StatusBadRequest, envelope{Error: toError(ErrInvalidInput)})
				return
			}
			input = json.RawMessage(v)
		}

		out, err := r.invoke(req.Context(), name, input)
		if err != nil {
			qerr := toError(err)
			writeEnvelope(w, qerr.Status(), envelope{Error: qerr})
			return
		}

		data, err := json.Marshal(out)
		if err != nil {
			writeEnvelope(w, http.StatusInternalServerError, envelope{Error: toError(err)})
			return
		}
		writeEnvelope(w, http.StatusOK, envelope{Result: &result{Data: data}})
	})
	return mux
}

type envelope struct {
	Result *result `json:"result,omitempty"`
	Error  *Error  `json:"error,omitempty"`
}

type result struct {
	Data json.RawMessage `json:"data"`
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
