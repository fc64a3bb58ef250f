package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/boatfinance/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and counts it by procedure and result code.
// It logs the procedure name, request ID, user ID, duration, and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			requestID := GetRequestID(ctx)
			userID := GetUserID(ctx) // empty if pre-auth

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					metrics.RPCCalls.WithLabelValues(procedure, connectErr.Code().String()).Inc()
					slog.Warn("RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"user_id", userID,
						"duration_ms", duration,
					)
				} else {
					metrics.RPCCalls.WithLabelValues(procedure, connect.CodeUnknown.String()).Inc()
					slog.Error("RPC error",
						"procedure", procedure,
						"request_id", requestID,
						"error", err,
						"user_id", userID,
						"duration_ms", duration,
					)
				}
			} else {
				metrics.RPCCalls.WithLabelValues(procedure, "ok").Inc()
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"user_id", userID,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
