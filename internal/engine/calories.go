package engine

import "fmt"

// WorkoutKind selects the calorie formula.
type WorkoutKind int

const (
	Strength WorkoutKind = iota
	Cardio
)

func (k WorkoutKind) String() string {
	switch k {
	case Strength:
		return "strength"
	case Cardio:
		return "cardio"
	default:
		return fmt.Sprintf("WorkoutKind(%d)", int(k))
	}
}

// ParseWorkoutKind maps "strength" and "cardio" to a kind. Anything else,
// including the empty string, is Strength.
func ParseWorkoutKind(s string) WorkoutKind {
	if s == "cardio" {
		return Cardio
	}
	return Strength
}

const (
	strengthMET       = 6.0
	cardioMET         = 8.0
	volumeCalorieCoef = 0.05
	metersInKm        = 1000.0
)

// Workout carries the inputs for a calorie estimate. TotalVolume is read only
// for Strength and SpeedKmh only for Cardio.
type Workout struct {
	Kind            WorkoutKind
	DurationMinutes float64
	BodyWeightKg    float64
	TotalVolume     float64
	SpeedKmh        float64
}

// KindFor returns Strength when it was requested or when the session moved
// any load, Cardio otherwise.
func KindFor(requested WorkoutKind, totalVolume float64) WorkoutKind {
	if requested == Strength || totalVolume > 0 {
		return Strength
	}
	return Cardio
}

// Calories estimates energy expenditure in kcal. The result is never negative.
func Calories(w Workout) float64 {
	duration := NormalizeDuration(w.DurationMinutes)
	weight := NormalizeBodyWeight(w.BodyWeightKg)

	var kcal float64
	switch w.Kind {
	case Cardio:
		kcal = cardioCalories(duration, weight, w.SpeedKmh)
	default:
		kcal = strengthCalories(duration, weight, w.TotalVolume)
	}
	return max(0, kcal)
}

func strengthCalories(durationMin, weightKg, volume float64) float64 {
	if volume < 0 {
		volume = 0
	}
	return weightKg*strengthMET*(durationMin/60) + volume*volumeCalorieCoef
}

func cardioCalories(durationMin, weightKg, speedKmh float64) float64 {
	if speedKmh > 0 {
		return (18*speedKmh - 20) * weightKg / metersInKm * durationMin
	}
	return weightKg * cardioMET * (durationMin / 60)
}

// SessionCalories estimates calories for a logged session using the
// session's own volume.
func SessionCalories(s Session, bodyWeightKg float64, requested WorkoutKind) float64 {
	volume := TotalVolume(s.Exercises)
	return Calories(Workout{
		Kind:            KindFor(requested, volume),
		DurationMinutes: s.DurationMinutes,
		BodyWeightKg:    bodyWeightKg,
		TotalVolume:     volume,
	})
}
