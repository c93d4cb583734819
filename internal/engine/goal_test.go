package engine

import (
	"testing"
	"time"
)

func sets(pairs ...float64) []SetRecord {
	var out []SetRecord
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, SetRecord{SetNumber: i/2 + 1, Weight: pairs[i], Reps: int(pairs[i+1])})
	}
	return out
}

// TestEvaluateCompleted verifies a session meeting all three targets completes the goal.
func TestEvaluateCompleted(t *testing.T) {
	g := Goal{Exercise: "Bench Press", TargetWeight: 100, TargetReps: 8, TargetSets: 3}
	history := []DatedEntry{
		{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Bench Press", Sets: sets(100, 8, 100, 8, 100, 8)}},
	}
	got := Evaluate(g, history)
	if !got.Completed {
		t.Errorf("Completed = false, want true (%+v)", got)
	}
	if got.CurrentWeight != 100 || got.CurrentReps != 8 || got.CurrentSets != 3 {
		t.Errorf("current = (%v,%d,%d), want (100,8,3)", got.CurrentWeight, got.CurrentReps, got.CurrentSets)
	}
}

// TestEvaluateSingleShortfall verifies any one missed target leaves the goal open.
func TestEvaluateSingleShortfall(t *testing.T) {
	g := Goal{Exercise: "Bench Press", TargetWeight: 100, TargetReps: 8, TargetSets: 3}
	tests := []struct {
		name string
		sets []SetRecord
	}{
		{"weight", sets(97.5, 8, 97.5, 8, 97.5, 8)},
		{"reps", sets(100, 7, 100, 7, 100, 7)},
		{"sets", sets(100, 8, 100, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(g, []DatedEntry{{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Bench Press", Sets: tt.sets}}})
			if got.Completed {
				t.Errorf("Completed = true, want false (%+v)", got)
			}
		})
	}
}

// TestEvaluateIndependentMaxima verifies weight and reps maxima may come from
// different sets.
func TestEvaluateIndependentMaxima(t *testing.T) {
	g := Goal{Exercise: "Squat", TargetWeight: 120, TargetReps: 10, TargetSets: 2}
	got := Evaluate(g, []DatedEntry{
		{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Squat", Sets: sets(120, 3, 80, 10)}},
	})
	if got.CurrentWeight != 120 || got.CurrentReps != 10 {
		t.Errorf("current = (%v,%d), want (120,10)", got.CurrentWeight, got.CurrentReps)
	}
	if !got.Completed {
		t.Error("Completed = false, want true")
	}
}

// TestEvaluateUsesMostRecent verifies only the latest matching session counts
// and that completion can be lost when it regresses.
func TestEvaluateUsesMostRecent(t *testing.T) {
	g := Goal{Exercise: "Row", TargetWeight: 60, TargetReps: 8, TargetSets: 3}
	history := []DatedEntry{
		{Date: day(2026, 4, 10), Entry: ExerciseEntry{Exercise: "Row", Sets: sets(50, 8, 50, 8, 50, 8)}},
		{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Row", Sets: sets(60, 8, 60, 8, 60, 8)}},
		{Date: day(2026, 4, 20), Entry: ExerciseEntry{Exercise: "Deadlift", Sets: sets(200, 1)}},
	}
	g.Completed = true
	got := Evaluate(g, history)
	if got.CurrentWeight != 50 {
		t.Errorf("CurrentWeight = %v, want 50", got.CurrentWeight)
	}
	if got.Completed {
		t.Error("Completed = true, want false after regression")
	}
}

// TestEvaluateNoMatchKeepsCurrent verifies stored values survive when no
// session has the exercise, and completion is still recomputed.
func TestEvaluateNoMatchKeepsCurrent(t *testing.T) {
	g := Goal{Exercise: "Dip", TargetWeight: 20, TargetReps: 8, TargetSets: 3,
		CurrentWeight: 25, CurrentReps: 9, CurrentSets: 3}
	got := Evaluate(g, []DatedEntry{{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "dip", Sets: sets(5, 5)}}})
	if got.CurrentWeight != 25 || got.CurrentReps != 9 || got.CurrentSets != 3 {
		t.Errorf("current changed: %+v", got)
	}
	if !got.Completed {
		t.Error("Completed = false, want true from stored values")
	}
}

// TestEvaluateLatestWithoutValidSets keeps stored values when the latest
// match has nothing countable.
func TestEvaluateLatestWithoutValidSets(t *testing.T) {
	g := Goal{Exercise: "Dip", TargetWeight: 20, CurrentWeight: 15, CurrentReps: 5, CurrentSets: 1}
	got := Evaluate(g, []DatedEntry{{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Dip", Sets: sets(0, 10)}}})
	if got.CurrentWeight != 15 {
		t.Errorf("CurrentWeight = %v, want 15", got.CurrentWeight)
	}
}

// TestEvaluateTieTakesLater verifies the later history element wins on equal dates.
func TestEvaluateTieTakesLater(t *testing.T) {
	g := Goal{Exercise: "Press", TargetWeight: 50}
	got := Evaluate(g, []DatedEntry{
		{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Press", Sets: sets(40, 5)}},
		{Date: day(2026, 4, 1), Entry: ExerciseEntry{Exercise: "Press", Sets: sets(45, 5)}},
	})
	if got.CurrentWeight != 45 {
		t.Errorf("CurrentWeight = %v, want 45", got.CurrentWeight)
	}
}

func TestGoalProgressAndDays(t *testing.T) {
	target := day(2026, 5, 1)
	g := Goal{TargetWeight: 100, CurrentWeight: 80, TargetDate: &target}
	if got := g.ProgressPercentage(); got != 80 {
		t.Errorf("ProgressPercentage = %v, want 80", got)
	}
	g.CurrentWeight = 120
	if got := g.ProgressPercentage(); got != 100 {
		t.Errorf("ProgressPercentage capped = %v, want 100", got)
	}
	if got := (Goal{}).ProgressPercentage(); got != 0 {
		t.Errorf("ProgressPercentage(no target) = %v, want 0", got)
	}

	if got := g.DaysRemaining(time.Date(2026, 4, 21, 23, 0, 0, 0, time.UTC)); got != 10 {
		t.Errorf("DaysRemaining = %d, want 10", got)
	}
	if got := g.DaysRemaining(day(2026, 6, 1)); got != 0 {
		t.Errorf("DaysRemaining past = %d, want 0", got)
	}
	if got := (Goal{}).DaysRemaining(day(2026, 6, 1)); got != 0 {
		t.Errorf("DaysRemaining no date = %d, want 0", got)
	}
}
