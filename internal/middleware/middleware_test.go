package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/swiper/pkg/swipeapi"
)

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/swiper.v1.SwipeService/GetState", nil))

	if called {
		t.Error("preflight must not reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestLoggingKeepsStatus(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &rec); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return rec
}

func TestLoggingInterceptorSessionID(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		resp   connect.AnyResponse
		err    error
		want   string
		level  string
		hasKey bool
	}{
		{
			name:   "from context",
			ctx:    WithSessionID(context.Background(), "s-ctx"),
			resp:   connect.NewResponse(&swipeapi.GetStateResponse{}),
			want:   "s-ctx",
			level:  "DEBUG",
			hasKey: true,
		},
		{
			name:   "from StartSession response",
			ctx:    context.Background(),
			resp:   connect.NewResponse(&swipeapi.StartSessionResponse{SessionID: "s-new"}),
			want:   "s-new",
			level:  "DEBUG",
			hasKey: true,
		},
		{
			name:  "missing session",
			ctx:   context.Background(),
			err:   connect.NewError(connect.CodeUnauthenticated, errors.New("header required")),
			level: "INFO",
		},
		{
			name:   "provider outage",
			ctx:    WithSessionID(context.Background(), "s-1"),
			err:    connect.NewError(connect.CodeUnavailable, errors.New("down")),
			want:   "s-1",
			level:  "WARN",
			hasKey: true,
		},
		{
			name:  "plain error",
			ctx:   context.Background(),
			err:   errors.New("boom"),
			level: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return tt.resp, tt.err
			}

			LoggingInterceptor()(next)(tt.ctx, connect.NewRequest(&swipeapi.GetStateRequest{}))

			rec := lastRecord(t, buf)
			if rec["level"] != tt.level {
				t.Errorf("level = %v, want %s", rec["level"], tt.level)
			}
			got, ok := rec["session_id"]
			if ok != tt.hasKey || (ok && got != tt.want) {
				t.Errorf("session_id = %v (present %v), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestMethodName(t *testing.T) {
	if got := methodName("/swiper.v1.SwipeService/SwipeRight"); got != "SwipeRight" {
		t.Errorf("methodName = %q", got)
	}
	if got := methodName("Undo"); got != "Undo" {
		t.Errorf("methodName = %q", got)
	}
}
