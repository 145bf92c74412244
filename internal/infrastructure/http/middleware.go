package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fxadmin-service/internal/application"
	"fxadmin-service/internal/infrastructure/logx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgDuplicateRequest = "Duplicate request"

func requestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)
			_, tid := logx.RequestIDs(r.Context())
			ctx := logx.WithRequestIDs(r.Context(), rid, tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func traceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid := r.Header.Get("X-Trace-Id")
			if tid == "" {
				tid = uuid.NewString()
			}
			w.Header().Set("X-Trace-Id", tid)
			rid, _ := logx.RequestIDs(r.Context())
			ctx := logx.WithRequestIDs(r.Context(), rid, tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logx.FromContext(r.Context()).Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func accessLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)
			logx.FromContext(r.Context()).Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sr.status),
				zap.Int("bytes", sr.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// idempotent rejects a POST whose X-Idempotency-Key was already seen on the
// same route, with or without the /api prefix. Requests without the header pass through.
// A key whose request did not succeed is released so the client can retry it.
func idempotent(store application.IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Idempotency-Key")
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			key = r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api") + ":" + key
			fresh, err := store.TryReserve(r.Context(), key)
			if err != nil {
				logx.FromContext(r.Context()).Error("idempotency.reserve_failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !fresh {
				writeError(w, http.StatusConflict, msgDuplicateRequest)
				return
			}
			sr := &statusRecorder{ResponseWriter: w}
			defer func() {
				if sr.status >= 200 && sr.status < 300 {
					return
				}
				if err := store.Release(context.WithoutCancel(r.Context()), key); err != nil {
					logx.FromContext(r.Context()).Error("idempotency.release_failed", zap.Error(err))
				}
			}()
			next.ServeHTTP(sr, r)
		})
	}
}
