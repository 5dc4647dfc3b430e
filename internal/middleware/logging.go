package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/internal/observability"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records its outcome in metrics. It logs the procedure name, user ID,
// duration, and any error codes/messages. metrics may be nil.
func LoggingInterceptor(metrics *observability.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			duration := elapsed.Milliseconds()
			userID := GetUserID(ctx) // empty if pre-auth
			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"user_id", userID,
						"duration_ms", duration,
					)
				} else {
					code = connect.CodeUnknown.String()
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"user_id", userID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"user_id", userID,
					"duration_ms", duration,
				)
			}

			if metrics != nil {
				metrics.RPCRequests.WithLabelValues(procedure, code).Inc()
				metrics.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
			}

			return resp, err
		}
	}
}
