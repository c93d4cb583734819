package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrNoValidExercises rejects a session in which no exercise has a valid set.
var ErrNoValidExercises = errors.New("session has no exercise with a valid set")

// ExerciseInput is an exercise as submitted, before coercion.
type ExerciseInput struct {
	Exercise string   `json:"exercise"`
	Sets     []RawSet `json:"sets"`
}

// SessionInput is a workout as submitted.
type SessionInput struct {
	Date            time.Time       `json:"date"`
	Name            string          `json:"name"`
	DurationMinutes any             `json:"duration_minutes"`
	Exercises       []ExerciseInput `json:"exercises"`
}

// PrepareSession coerces and filters a submission into a Session. Exercises
// with a blank identifier or no valid set are dropped, surviving sets are
// renumbered from 1 and exercises are ordered from 0. An exercise submitted
// more than once becomes one entry at its first position. When nothing
// survives it returns ErrNoValidExercises.
func PrepareSession(in SessionInput) (Session, error) {
	s := Session{
		Date:            civilDay(in.Date),
		Name:            strings.TrimSpace(in.Name),
		DurationMinutes: NormalizeDuration(ParseFloat(in.DurationMinutes, DefaultDurationMinutes)),
	}
	if s.Name == "" {
		s.Name = "Workout " + s.Date.Format("02.01.2006")
	}

	index := make(map[string]int)
	for _, ex := range in.Exercises {
		name := strings.TrimSpace(ex.Exercise)
		if name == "" {
			continue
		}
		var sets []SetRecord
		for _, raw := range ex.Sets {
			if rec := raw.Record(); rec.Valid() {
				sets = append(sets, rec)
			}
		}
		if len(sets) == 0 {
			continue
		}
		i, seen := index[name]
		if !seen {
			i = len(s.Exercises)
			index[name] = i
			s.Exercises = append(s.Exercises, ExerciseEntry{Exercise: name, Order: i})
		}
		for _, rec := range sets {
			rec.SetNumber = len(s.Exercises[i].Sets) + 1
			s.Exercises[i].Sets = append(s.Exercises[i].Sets, rec)
		}
	}

	if len(s.Exercises) == 0 {
		return Session{}, ErrNoValidExercises
	}
	return s, nil
}

// ValidateSession lists human-readable problems with a submission so they can
// be shown before PrepareSession drops anything. Sets with both fields blank
// are ignored.
func ValidateSession(in SessionInput) []string {
	var problems []string
	named := 0

	for _, ex := range in.Exercises {
		name := strings.TrimSpace(ex.Exercise)
		if name == "" {
			continue
		}
		named++
		hasValid := false

		for i, raw := range ex.Sets {
			if blank(raw.Weight) && blank(raw.Reps) {
				continue
			}
			weight := ParseFloat(raw.Weight, math.NaN())
			reps := ParseInt(raw.Reps, math.MinInt)
			switch {
			case math.IsNaN(weight) || reps == math.MinInt:
				problems = append(problems, fmt.Sprintf("set %d of %q has missing or invalid weight or reps", i+1, name))
			case weight <= 0 || reps <= 0:
				problems = append(problems, fmt.Sprintf("set %d of %q: weight and reps must be greater than 0", i+1, name))
			case weight > MaxSetWeight || reps > MaxSetReps:
				problems = append(problems, fmt.Sprintf("set %d of %q: weight above %gkg or reps above %d", i+1, name, MaxSetWeight, MaxSetReps))
			default:
				hasValid = true
			}
		}

		if !hasValid {
			problems = append(problems, fmt.Sprintf("exercise %q has no valid sets", name))
		}
	}

	if named == 0 {
		problems = append(problems, "no exercise with a name was submitted")
	}
	return problems
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
