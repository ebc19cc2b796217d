package log

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
)

func newBufferedLogger(buf *bytes.Buffer) *Logger {
	return New(Config{
		Component: ComponentHTTP,
		Handler:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

func TestMiddleware_InjectsLoggerIntoContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	var got *Logger
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	Middleware(logger)(inner).ServeHTTP(httptest.NewRecorder(), req)

	if got != logger {
		t.Errorf("FromContext() = %p, want the injected logger %p", got, logger)
	}
}

func TestFromContext_FallbackWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	logger := FromContext(req.Context())
	if logger == nil || logger.Logger == nil {
		t.Fatal("FromContext() without middleware must return a usable logger")
	}
	if logger.component != "unknown" {
		t.Errorf("fallback component = %q, want %q", logger.component, "unknown")
	}
}

func TestRequestIDMiddleware_EnrichesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "handled")
	})

	extract := func(*http.Request) string { return "req_abc123" }
	handler := Middleware(logger)(RequestIDMiddleware(extract)(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, FieldRequestID+"=req_abc123") {
		t.Errorf("handler log missing request id attribute: %q", out)
	}
	if !strings.Contains(out, "component="+ComponentHTTP) {
		t.Errorf("handler log missing component attribute: %q", out)
	}
}

func TestHTTPLogger_EscalatesLevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{name: "success stays info", status: http.StatusOK, want: "level=INFO"},
		{name: "client error warns", status: http.StatusNotFound, want: "level=WARN"},
		{name: "server error errors", status: http.StatusInternalServerError, want: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			hl := NewHTTPLogger(newBufferedLogger(&buf))

			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			hl.LogEnd(req.Context(), req, tt.status, 3, "127.0.0.1")

			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("LogEnd(%d) output = %q, want it to contain %q", tt.status, out, tt.want)
			}
			if !strings.Contains(out, FieldStatusCode+"=") {
				t.Errorf("LogEnd(%d) output missing status code field: %q", tt.status, out)
			}
		})
	}
}

func TestLogFields_Builder(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentTransaction).
		WithOperation(OpCreate).
		WithRecord("t1", "Maria", 19900)

	slice := fields.ToSlice()
	if len(slice) != len(fields)*2 {
		t.Fatalf("ToSlice() length = %d, want %d", len(slice), len(fields)*2)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{FieldAmountCents, FieldClientName, FieldComponent, FieldOperation, FieldRecordID}
	sort.Strings(want)
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("field keys = %v, want %v", keys, want)
			break
		}
	}

	if fields[FieldAmountCents] != int64(19900) {
		t.Errorf("amount field = %v, want 19900", fields[FieldAmountCents])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "info", want: slog.LevelInfo},
		{in: "nonsense", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
