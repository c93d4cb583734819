package engine

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestStrengthCaloriesReference checks the base strength formula with no volume.
func TestStrengthCaloriesReference(t *testing.T) {
	got := Calories(Workout{Kind: Strength, DurationMinutes: 60, BodyWeightKg: 70})
	if !approx(got, 420) {
		t.Errorf("Calories = %v, want 420", got)
	}
}

// TestStrengthCaloriesVolumeTerm verifies the 0.05 kcal per kg·rep volume term.
func TestStrengthCaloriesVolumeTerm(t *testing.T) {
	got := Calories(Workout{Kind: Strength, DurationMinutes: 30, BodyWeightKg: 80, TotalVolume: 2000})
	want := 80*6.0*0.5 + 2000*0.05
	if !approx(got, want) {
		t.Errorf("Calories = %v, want %v", got, want)
	}
}

// TestCaloriesDefaults verifies missing duration falls back to 60 minutes and
// missing body weight to 70 kg.
func TestCaloriesDefaults(t *testing.T) {
	tests := []struct {
		name string
		w    Workout
	}{
		{"zero duration", Workout{Kind: Strength, DurationMinutes: 0, BodyWeightKg: 70}},
		{"negative duration", Workout{Kind: Strength, DurationMinutes: -15, BodyWeightKg: 70}},
		{"zero weight", Workout{Kind: Strength, DurationMinutes: 60, BodyWeightKg: 0}},
		{"NaN weight", Workout{Kind: Strength, DurationMinutes: 60, BodyWeightKg: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calories(tt.w); !approx(got, 420) {
				t.Errorf("Calories = %v, want 420", got)
			}
		})
	}
}

// TestCardioCalories covers the speed formula, the MET fallback and the floor at 0.
func TestCardioCalories(t *testing.T) {
	got := Calories(Workout{Kind: Cardio, DurationMinutes: 30, BodyWeightKg: 70, SpeedKmh: 10})
	want := (18*10.0 - 20) * 70 / 1000 * 30
	if !approx(got, want) {
		t.Errorf("speed formula = %v, want %v", got, want)
	}

	got = Calories(Workout{Kind: Cardio, DurationMinutes: 45, BodyWeightKg: 60})
	want = 60 * 8.0 * 0.75
	if !approx(got, want) {
		t.Errorf("MET fallback = %v, want %v", got, want)
	}

	// 18*1 - 20 is negative
	if got := Calories(Workout{Kind: Cardio, DurationMinutes: 30, BodyWeightKg: 70, SpeedKmh: 1}); got != 0 {
		t.Errorf("slow walk = %v, want 0", got)
	}
}

// TestCaloriesMonotone verifies the strength estimate never decreases as
// duration or volume grow.
func TestCaloriesMonotone(t *testing.T) {
	prev := -1.0
	for d := 5.0; d <= 180; d += 5 {
		got := Calories(Workout{Kind: Strength, DurationMinutes: d, BodyWeightKg: 75, TotalVolume: 1000})
		if got < prev {
			t.Fatalf("duration %v: %v < %v", d, got, prev)
		}
		prev = got
	}
	prev = -1.0
	for v := 0.0; v <= 20000; v += 500 {
		got := Calories(Workout{Kind: Strength, DurationMinutes: 60, BodyWeightKg: 75, TotalVolume: v})
		if got < prev || got < 0 {
			t.Fatalf("volume %v: %v (prev %v)", v, got, prev)
		}
		prev = got
	}
}

// TestKindFor verifies that any moved load forces the strength formula.
func TestKindFor(t *testing.T) {
	if KindFor(Cardio, 100) != Strength {
		t.Error("KindFor(Cardio, 100) should be Strength")
	}
	if KindFor(Cardio, 0) != Cardio {
		t.Error("KindFor(Cardio, 0) should be Cardio")
	}
	if KindFor(Strength, 0) != Strength {
		t.Error("KindFor(Strength, 0) should be Strength")
	}
}

func TestSessionCalories(t *testing.T) {
	s := Session{
		DurationMinutes: 60,
		Exercises: []ExerciseEntry{
			{Exercise: "Bench", Sets: []SetRecord{{Weight: 100, Reps: 10}, {Weight: 0, Reps: 10}}},
		},
	}
	got := SessionCalories(s, 70, Strength)
	if !approx(got, 420+1000*0.05) {
		t.Errorf("SessionCalories = %v, want %v", got, 420+1000*0.05)
	}
}

func TestParseWorkoutKind(t *testing.T) {
	if ParseWorkoutKind("cardio") != Cardio {
		t.Error("cardio")
	}
	if ParseWorkoutKind("") != Strength || ParseWorkoutKind("yoga") != Strength {
		t.Error("unknown kinds should be Strength")
	}
	if Cardio.String() != "cardio" || Strength.String() != "strength" {
		t.Errorf("String() = %q/%q", Cardio, Strength)
	}
}
