package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	got, err := ParseDate("01-06-2025 10:00", DateLayout)
	if err != nil || !got.Equal(want) {
		t.Fatalf("got %v, %v", got, err)
	}

	got, err = ParseDate("01-06-2025 10:00:00", DateSecondsLayout, DateLayout)
	if err != nil || !got.Equal(want) {
		t.Fatalf("got %v, %v", got, err)
	}

	if _, err := ParseDate("2025-06-01 10:00", DateLayout); err == nil {
		t.Fatal("expected error for ISO date")
	}
	if _, err := ParseDate("01-06-2025 10:00:00", DateLayout); err == nil {
		t.Fatal("create layout must not accept seconds")
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 12, 24, 9, 5, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "24-12-2025 09:05" {
		t.Fatalf("got %q", got)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"motivo": "es obligatorio", "fecha": "formato inválido"}}
	if got := err.Error(); got != "fecha: formato inválido; motivo: es obligatorio" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := error(&UpstreamError{Resource: "paciente", Err: cause})
	if !errors.Is(err, cause) {
		t.Fatal("expected UpstreamError to unwrap its cause")
	}
}
