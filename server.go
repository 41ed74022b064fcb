package bind

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader is read from the request when present, generated otherwise,
// and always echoed on the response.
const requestIDHeader = "X-Request-ID"

type serverOptions struct {
	logger  *slog.Logger
	maxBody int64
}

// ServerOption configures the http.Handler adapter.
type ServerOption func(*serverOptions)

// WithLogger sets the logger for per-request log lines and panic reports.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = l
	}
}

// WithMaxBodySize caps the request body in bytes. Zero means no limit.
// Default is 1MB.
func WithMaxBodySize(n int64) ServerOption {
	return func(o *serverOptions) {
		o.maxBody = n
	}
}

// Handler adapts the table's Dispatch into an http.Handler: it translates
// each *http.Request into a RequestDescriptor and writes the
// ResponseDescriptor back as application/json. Compose standard
// func(http.Handler) http.Handler middleware around it as usual.
func (bt *BindingTable) Handler(opts ...ServerOption) http.Handler {
	o := &serverOptions{maxBody: 1 << 20}
	for _, opt := range opts {
		opt(o)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := o.logger
		if logger == nil {
			logger = slog.Default()
		}

		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		var resp ResponseDescriptor
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", id,
				)
				resp = problem(http.StatusInternalServerError, "internal error",
					fmt.Sprintf("panic: %v", rec), "")
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(resp.Status)
			//nolint:errcheck // nothing to do about a failed response write
			w.Write(resp.Body)

			logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", resp.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("request_id", id),
			)
		}()

		body, err := readBody(r, o.maxBody)
		if err != nil {
			resp = problem(http.StatusRequestEntityTooLarge, "request too large", err.Error(), "body")
			return
		}

		resp = bt.Dispatch(r.Context(), RequestDescriptor{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
	})
}

// readBody drains the request body, enforcing the size cap.
func readBody(r *http.Request, maxBody int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	reader := io.Reader(r.Body)
	if maxBody > 0 {
		reader = http.MaxBytesReader(nil, r.Body, maxBody)
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return b, nil
}
