package promptstyle

import (
	"strings"
	"testing"
)

func TestApplySystemIdempotent(t *testing.T) {
	once := ApplySystem("You are an expert coach.")
	if !strings.HasPrefix(once, "You are an expert coach.") || !strings.Contains(once, marker) {
		t.Fatalf("unexpected: %q", once)
	}
	if twice := ApplySystem(once); twice != once {
		t.Fatalf("not idempotent: %q", twice)
	}
	if ApplySystem("  ") != "" {
		t.Fatalf("empty prompt should stay empty")
	}
}
