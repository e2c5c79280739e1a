package envutil

import (
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	t.Setenv("TLG_INT", "42")
	if got := Int("TLG_INT", 1); got != 42 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("TLG_INT", "nope")
	if got := Int("TLG_INT", 1); got != 1 {
		t.Fatalf("got %d", got)
	}
}

func TestBoolAndSeconds(t *testing.T) {
	t.Setenv("TLG_BOOL", "yes")
	if !Bool("TLG_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("TLG_BOOL", "maybe")
	if Bool("TLG_BOOL", false) {
		t.Fatalf("expected default")
	}
	t.Setenv("TLG_SECS", "3")
	if got := Seconds("TLG_SECS", time.Minute); got != 3*time.Second {
		t.Fatalf("got %s", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("TLG_LIST", " a, ,b ,c")
	got := List("TLG_LIST", nil)
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("got %v", got)
	}
	t.Setenv("TLG_LIST", "")
	if got := List("TLG_LIST", []string{"x"}); len(got) != 1 {
		t.Fatalf("got %v", got)
	}
}
