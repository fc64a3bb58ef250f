package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier on requests, responses and
// error metadata.
const RequestIDHeader = "Request-Id"

// RequestIDKey is the context key for the request identifier.
const RequestIDKey contextKey = "request_id"

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// RequestIDInterceptor assigns every call a request ID, reusing the inbound
// Request-Id header when present, and echoes it on the response or error.
func RequestIDInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				if id := GetRequestID(ctx); id != "" {
					req.Header().Set(RequestIDHeader, id)
				}
				return next(ctx, req)
			}

			id := req.Header().Get(RequestIDHeader)
			if id == "" || len(id) > 128 {
				id = uuid.New().String()
			}
			ctx = context.WithValue(ctx, RequestIDKey, id)

			resp, err := next(ctx, req)
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(RequestIDHeader, id)
				}
				return nil, err
			}
			resp.Header().Set(RequestIDHeader, id)
			return resp, nil
		}
	}
}
