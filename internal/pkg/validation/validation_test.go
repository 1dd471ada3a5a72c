package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string  `json:"clientName" validate:"notblank"`
	Email string  `json:"email" validate:"omitempty,email"`
	Note  *string `json:"note" validate:"omitempty,notblank"`
}

func TestMessages_Valid(t *testing.T) {
	msgs, err := Messages(sample{Name: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msgs != nil {
		t.Fatalf("expected no messages, got %v", msgs)
	}
}

func TestMessages_BlankIsRequired(t *testing.T) {
	msgs, err := Messages(sample{Name: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 || msgs[0] != "clientName is required" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestMessages_PointerFieldsValidatedWhenPresent(t *testing.T) {
	blank := " "
	msgs, _ := Messages(sample{Name: "Acme", Note: &blank})
	if len(msgs) != 1 || !strings.HasPrefix(msgs[0], "note") {
		t.Fatalf("expected note message, got %v", msgs)
	}

	msgs, _ = Messages(sample{Name: "Acme"})
	if msgs != nil {
		t.Fatalf("nil pointer must be skipped, got %v", msgs)
	}
}

func TestMessages_Email(t *testing.T) {
	msgs, _ := Messages(sample{Name: "Acme", Email: "nope"})
	if len(msgs) != 1 || msgs[0] != "email must be a valid email" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}
