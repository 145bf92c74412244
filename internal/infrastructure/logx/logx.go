package logx

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// SetLevel changes the level of every logger derived from L. Unknown levels
// are ignored.
func SetLevel(lvl string) {
	_ = level.UnmarshalText([]byte(strings.ToLower(lvl)))
}

type ctxKey struct{}

type requestIDs struct{ requestID, traceID string }

// WithRequestIDs stores the request and trace ids for FromContext.
func WithRequestIDs(ctx context.Context, requestID, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestIDs{requestID: requestID, traceID: traceID})
}

// RequestIDs returns the ids stored by WithRequestIDs.
func RequestIDs(ctx context.Context) (requestID, traceID string) {
	ids, _ := ctx.Value(ctxKey{}).(requestIDs)
	return ids.requestID, ids.traceID
}

// FromContext returns L enriched with the request and trace ids found in ctx.
func FromContext(ctx context.Context) *zap.Logger {
	rid, tid := RequestIDs(ctx)
	if rid == "" && tid == "" {
		return logger
	}
	return logger.With(zap.String("request_id", rid), zap.String("trace_id", tid))
}
