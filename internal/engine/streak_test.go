package engine

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestStreakGapResets walks D, D+1, D+3: the gap resets current but keeps longest.
func TestStreakGapResets(t *testing.T) {
	d := day(2026, 3, 1)
	s := Streak{Type: DefaultStreakType}

	s = s.Record(d)
	if s.Current != 1 || s.Longest != 1 {
		t.Fatalf("after D: %+v", s)
	}
	s = s.Record(d.AddDate(0, 0, 1))
	if s.Current != 2 || s.Longest != 2 {
		t.Fatalf("after D+1: %+v", s)
	}
	s = s.Record(d.AddDate(0, 0, 3))
	if s.Current != 1 {
		t.Errorf("current = %d, want 1", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("longest = %d, want 2", s.Longest)
	}
	if !s.LastActivity.Equal(d.AddDate(0, 0, 3)) {
		t.Errorf("last = %v, want %v", s.LastActivity, d.AddDate(0, 0, 3))
	}
}

// TestStreakSameDayIdempotent verifies a second log on the same day changes nothing,
// even at a different time of day.
func TestStreakSameDayIdempotent(t *testing.T) {
	morning := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC)

	s := Streak{Current: 4, Longest: 9}
	yesterday := day(2026, 2, 28)
	s.LastActivity = &yesterday

	first := s.Record(morning)
	second := first.Record(evening)
	if first.Current != 5 {
		t.Fatalf("first.Current = %d, want 5", first.Current)
	}
	if second.Current != first.Current || second.Longest != first.Longest || !second.LastActivity.Equal(*first.LastActivity) {
		t.Errorf("second = %+v, want %+v", second, first)
	}
}

// TestStreakCrossesMonth verifies consecutive days across a month boundary.
func TestStreakCrossesMonth(t *testing.T) {
	last := day(2026, 1, 31)
	s := Streak{Current: 3, Longest: 3, LastActivity: &last}
	s = s.Record(day(2026, 2, 1))
	if s.Current != 4 || s.Longest != 4 {
		t.Errorf("got %+v, want current=4 longest=4", s)
	}
}

// TestStreakNegativeLongest treats a corrupt longest value as zero.
func TestStreakNegativeLongest(t *testing.T) {
	s := Streak{Longest: -3}.Record(day(2026, 5, 5))
	if s.Longest != 1 {
		t.Errorf("longest = %d, want 1", s.Longest)
	}
}

// TestStreakDoesNotMutateReceiver verifies Record returns a new value.
func TestStreakDoesNotMutateReceiver(t *testing.T) {
	orig := Streak{Current: 2, Longest: 2}
	_ = orig.Record(day(2026, 5, 5))
	if orig.Current != 2 || orig.LastActivity != nil {
		t.Errorf("receiver changed: %+v", orig)
	}
}

func TestStreakMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    Milestone
	}{
		{0, MilestoneNone},
		{1, MilestoneNone},
		{2, MilestoneOngoing},
		{5, MilestoneFive},
		{7, MilestoneWeek},
		{14, MilestoneWeek},
		{35, MilestoneWeek},
		{10, MilestoneFive},
	}
	for _, tt := range tests {
		if got := (Streak{Current: tt.current}).Milestone(); got != tt.want {
			t.Errorf("Milestone(%d) = %q, want %q", tt.current, got, tt.want)
		}
	}
}
