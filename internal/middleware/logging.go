package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/swiper/pkg/swipeapi"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC
// with the method, the session it ran in, and how long it took. Install it
// after SessionInterceptor so the session ID is available. StartSession calls
// carry no session header, so the ID is taken from the response instead.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			sessionID := GetSessionID(ctx)
			if sessionID == "" && err == nil && resp != nil {
				if started, ok := resp.Any().(*swipeapi.StartSessionResponse); ok {
					sessionID = started.SessionID
				}
			}

			attrs := []slog.Attr{
				slog.String("rpc", methodName(req.Spec().Procedure)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if sessionID != "" {
				attrs = append(attrs, slog.String("session_id", sessionID))
			}

			level, msg := slog.LevelDebug, "RPC ok"
			if err != nil {
				msg = "RPC failed"
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					level = levelFor(connectErr.Code())
					attrs = append(attrs,
						slog.String("code", connectErr.Code().String()),
						slog.String("error", connectErr.Message()),
					)
				} else {
					level = slog.LevelError
					attrs = append(attrs, slog.Any("error", err))
				}
			}
			slog.LogAttrs(ctx, level, msg, attrs...)

			return resp, err
		}
	}
}

// levelFor maps an RPC error code to a log level. Caller mistakes (bad
// input, unknown or missing session) are routine for a browser client that
// outlived its session and are logged at info.
func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeUnauthenticated:
		return slog.LevelInfo
	case connect.CodeAborted, connect.CodeUnavailable, connect.CodeDeadlineExceeded, connect.CodeCanceled:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// methodName returns the last segment of a procedure path.
func methodName(procedure string) string {
	if i := strings.LastIndex(procedure, "/"); i >= 0 {
		return procedure[i+1:]
	}
	return procedure
}
