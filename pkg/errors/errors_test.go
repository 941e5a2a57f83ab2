package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidPlan, "empty plan text"),
			want: "INVALID_PLAN: empty plan text",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInternal, stderrors.New("boom"), "marshal document"),
			want: "INTERNAL_ERROR: marshal document: boom",
		},
		{
			name: "formatted message",
			err:  New(ErrCodePlanCardinality, "expected %d children, got %d", 2, 3),
			want: "PLAN_CARDINALITY: expected 2 children, got 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodePlanArrowMismatch, "left 3 vs right 4")

	if !Is(err, ErrCodePlanArrowMismatch) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true for non-structured error")
	}

	// Code matching must survive fmt wrapping.
	wrapped := fmt.Errorf("while generating: %w", err)
	if !Is(wrapped, ErrCodePlanArrowMismatch) {
		t.Error("Is() = false for wrapped error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeFileNotFound, cause, "open plan file")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() does not find the cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidFormat, "unknown format: webp")); got != "unknown format: webp" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}
