package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("amount must be positive"), http.StatusBadRequest},
		{"not found", NewNotFoundError("meal"), http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("missing token"), http.StatusUnauthorized},
		{"database", NewDatabaseError(errors.New("conn reset")), http.StatusInternalServerError},
		{"timeout", NewTimeoutError("water query", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("create meal: %w", NewValidationError("bad")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	code, msg := PublicMessage(NewDatabaseError(errors.New("password authentication failed")))
	if code != "DB_ERROR" || strings.Contains(msg, "password") {
		t.Fatalf("leaked internal message: %s %s", code, msg)
	}

	code, msg = PublicMessage(NewValidationError("amount must be positive"))
	if code != "VALIDATION" || msg != "amount must be positive" {
		t.Fatalf("unexpected validation message: %s %s", code, msg)
	}
}

func TestIsMatchesTypeAndCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewNotFoundError("habit"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("not-found should not match invalid input")
	}
	if !IsNotFound(err) || IsValidation(err) {
		t.Fatal("type helpers disagree")
	}
}

func TestUnwrapReachesInternal(t *testing.T) {
	root := errors.New("disk full")
	err := NewInternalError(root)
	if !errors.Is(err, root) {
		t.Fatal("expected internal error in chain")
	}
}

func TestHandlerLogsByType(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(slog.New(slog.NewTextHandler(&buf, nil)))

	h.Handle(context.Background(), NewValidationError("bad date"))
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("validation should log at warn: %s", buf.String())
	}

	buf.Reset()
	h.Handle(context.Background(), NewDatabaseError(errors.New("timeout")))
	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Fatalf("database should log at error: %s", buf.String())
	}

	buf.Reset()
	h.Handle(context.Background(), nil)
	if buf.Len() != 0 {
		t.Fatal("nil error should not log")
	}
}

func TestSourcePointsAtCaller(t *testing.T) {
	err := NewValidationError("bad")
	if !strings.Contains(err.Source, "errors_test.go") {
		t.Fatalf("source = %q", err.Source)
	}
}

func TestTimeoutKeepsCause(t *testing.T) {
	err := NewTimeoutError("sleep query", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) || !errors.Is(err, ErrTimeout) {
		t.Fatalf("chain lost: %v", err)
	}
	if err.Context["operation"] != "sleep query" {
		t.Fatalf("context = %v", err.Context)
	}
}

func TestWrapKeepsTypeAndCause(t *testing.T) {
	root := errors.New("connection refused")
	err := Wrap(root, ErrorTypeExternal, "REDIS", "state store unavailable")
	if HTTPStatus(err) != http.StatusBadGateway || !errors.Is(err, root) {
		t.Fatalf("unexpected wrap result: %v", err)
	}
	if code, msg := PublicMessage(err); code != "REDIS" || msg != "state store unavailable" {
		t.Fatalf("public = %s %s", code, msg)
	}
}
