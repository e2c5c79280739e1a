package domain

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// Wednesday
		{time.Date(2024, 5, 15, 13, 30, 0, 0, loc), time.Date(2024, 5, 13, 0, 0, 0, 0, loc)},
		// Monday midnight stays put
		{time.Date(2024, 5, 13, 0, 0, 0, 0, loc), time.Date(2024, 5, 13, 0, 0, 0, 0, loc)},
		// Sunday maps back to the previous Monday
		{time.Date(2024, 5, 19, 23, 59, 0, 0, loc), time.Date(2024, 5, 13, 0, 0, 0, 0, loc)},
		// Crosses a month boundary
		{time.Date(2024, 6, 1, 8, 0, 0, 0, loc), time.Date(2024, 5, 27, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		if got := WeekStart(tc.now); !got.Equal(tc.want) {
			t.Fatalf("WeekStart(%s)=%s want %s", tc.now, got, tc.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	if got := DayLabel(time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC)); got != "Sun" {
		t.Fatalf("got %s", got)
	}
	if got := DayLabel(time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)); got != "Mon" {
		t.Fatalf("got %s", got)
	}
}

func TestParseThinkingType(t *testing.T) {
	if tt, ok := ParseThinkingType("Strategic"); !ok || tt.SkillName() != "Strategic Thinking" {
		t.Fatalf("got %q %v", tt, ok)
	}
	if _, ok := ParseThinkingType("strategic"); ok {
		t.Fatalf("enum is case sensitive")
	}
}

func TestIsThinkingTool(t *testing.T) {
	if !ActivityReverseEngineering.IsThinkingTool() || ActivityExercise.IsThinkingTool() {
		t.Fatalf("unexpected classification")
	}
}
