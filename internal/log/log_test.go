package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"Warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestWithComponentReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentApp, Output: &buf})

	l.WithComponent(ComponentFinance).Info("hello")

	out := buf.String()
	if !strings.Contains(out, "component=finance") {
		t.Fatalf("missing component in %q", out)
	}
	if strings.Contains(out, "component=app") {
		t.Fatalf("component repeated in %q", out)
	}
}

func TestFromContext(t *testing.T) {
	if l := FromContext(context.Background()); l.Component() != "unknown" {
		t.Fatalf("component = %q", l.Component())
	}

	base := New(Config{Component: ComponentHTTP, Output: &bytes.Buffer{}})
	var got *Logger
	h := Middleware(base)(ComponentMiddleware(ComponentAccount)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || got.Component() != ComponentAccount {
		t.Fatalf("logger = %+v", got)
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Output: &buf}))
	r := httptest.NewRequest(http.MethodPost, "/api/test-drives", nil)

	sl.LogHTTPEnd(context.Background(), r, "req_1", http.StatusUnprocessableEntity, 3, "10.0.0.1")
	sl.LogError(context.Background(), "store failed", errors.New("disk full"), ErrorTypeDatabase, ComponentStorage, OpUpdate)

	out := buf.String()
	for _, want := range []string{"level=WARN", "status_code=422", "request_id=req_1", "level=ERROR", `error="disk full"`, "error_type=database_error", "component=storage"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithError(nil, ErrorTypeInternal).WithVisitor("").WithLead("l1", "contact")
	if _, ok := f[FieldError]; ok {
		t.Fatal("nil error should add nothing")
	}
	if _, ok := f[FieldVisitorID]; ok {
		t.Fatal("empty visitor should add nothing")
	}
	if f[FieldLeadID] != "l1" || f[FieldLeadKind] != "contact" {
		t.Fatalf("fields = %v", f)
	}
	if len(f.ToSlice()) != 4 {
		t.Fatalf("slice = %v", f.ToSlice())
	}
}
