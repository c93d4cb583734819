package engine

import (
	"fmt"
	"strings"
	"testing"
)

func entry(d int, s ...float64) DatedEntry {
	return DatedEntry{Date: day(2026, 3, d), Entry: ExerciseEntry{Exercise: "Bench", Sets: sets(s...)}}
}

func TestSuggestNoHistory(t *testing.T) {
	got := Suggest(nil)
	if got.Suggestion != nil || got.Message == "" {
		t.Errorf("Suggest(nil) = %+v", got)
	}
}

func TestSuggestNoValidSets(t *testing.T) {
	got := Suggest([]DatedEntry{entry(1, 0, 10)})
	if got.Suggestion != nil || got.Message == "" {
		t.Errorf("Suggest = %+v", got)
	}
}

// TestSuggestRules verifies each rep rule and that the reason quotes the
// exact suggested weight.
func TestSuggestRules(t *testing.T) {
	tests := []struct {
		name string
		e    DatedEntry
		want float64
	}{
		{"all sets ten or more", entry(1, 80, 10, 80, 12), 82.5},
		{"average eight", entry(1, 80, 8, 80, 9), 81.25},
		{"under six", entry(1, 80, 5, 80, 4), 77.5},
		{"floor at twenty", entry(1, 21, 3), 20},
		{"wide spread holds", entry(1, 80, 2, 80, 7), 80},
		{"middle range repeats", entry(1, 80, 7, 80, 6), 80},
		{"quarter increment kept", entry(1, 62.5, 8, 62.5, 8), 63.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest([]DatedEntry{tt.e})
			if got.Suggestion == nil {
				t.Fatalf("nil suggestion: %+v", got)
			}
			if got.Suggestion.Weight != tt.want {
				t.Errorf("Weight = %v, want %v", got.Suggestion.Weight, tt.want)
			}
			if w := fmt.Sprintf("%gkg", got.Suggestion.Weight); !strings.Contains(got.Suggestion.Reason, w) {
				t.Errorf("Reason = %q, want it to mention %s", got.Suggestion.Reason, w)
			}
			if got.Suggestion.Reps != DefaultTargetReps {
				t.Errorf("Reps = %d, want %d", got.Suggestion.Reps, DefaultTargetReps)
			}
		})
	}
}

// TestSuggestTrend verifies steady progress and plateau detection against up
// to three previous sessions, regardless of input order.
func TestSuggestTrend(t *testing.T) {
	got := Suggest([]DatedEntry{entry(1, 70, 8), entry(10, 80, 8), entry(5, 75, 8)})
	if got.Suggestion.Trend != TrendSteadyProgress {
		t.Errorf("Trend = %q, want steady_progress", got.Suggestion.Trend)
	}
	if got.LastSession.Date != "2026-03-10" || got.LastSession.MaxWeight != 80 {
		t.Errorf("LastSession = %+v", got.LastSession)
	}

	got = Suggest([]DatedEntry{entry(10, 80, 8), entry(5, 80, 8), entry(1, 85, 8)})
	if got.Suggestion.Trend != TrendPlateau {
		t.Errorf("Trend = %q, want plateau", got.Suggestion.Trend)
	}

	got = Suggest([]DatedEntry{entry(10, 80, 8), entry(5, 75, 8)})
	if got.Suggestion.Trend != TrendNone {
		t.Errorf("Trend = %q, want none", got.Suggestion.Trend)
	}
}
