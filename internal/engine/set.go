// Package engine holds the training metrics and progression rules: volume
// aggregation, calorie estimates, streaks, goal evaluation and the linear and
// double progression planners. Everything here is pure; callers pass in the
// user's state and persist whatever comes back.
package engine

import (
	"encoding/json"
	"time"
)

// Upper bounds for a single set. Larger values keep volume and calorie
// totals finite.
const (
	MaxSetWeight = 1000.0
	MaxSetReps   = 1000
)

// SetRecord is one performed set.
type SetRecord struct {
	SetNumber int     `json:"set_number"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

// Valid reports whether the set counts toward metrics: positive weight and
// reps within MaxSetWeight and MaxSetReps.
func (s SetRecord) Valid() bool {
	return s.Weight > 0 && s.Reps > 0 &&
		s.Weight <= MaxSetWeight && s.Reps <= MaxSetReps
}

// ExerciseEntry is an exercise logged within a session. Exercise is an opaque
// identifier: two entries are the same exercise only if the strings are equal.
type ExerciseEntry struct {
	Exercise string      `json:"exercise"`
	Sets     []SetRecord `json:"sets"`
	Order    int         `json:"order"`
}

// ValidSets returns the sets with positive weight and reps, in logged order.
func (e ExerciseEntry) ValidSets() []SetRecord {
	var out []SetRecord
	for _, s := range e.Sets {
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// Session is a workout as seen by the engine.
type Session struct {
	Date            time.Time       `json:"date"`
	Name            string          `json:"name"`
	DurationMinutes float64         `json:"duration_minutes"`
	Exercises       []ExerciseEntry `json:"exercises"`
}

// DatedEntry pairs an exercise entry with the date of the session that logged it.
type DatedEntry struct {
	Date  time.Time     `json:"date"`
	Entry ExerciseEntry `json:"entry"`
}

// RawSet is a set as it arrives from clients or stored JSON blobs, where
// weight and reps may be numbers, numeric strings, or missing.
type RawSet struct {
	SetNumber any `json:"set_number"`
	Weight    any `json:"weight"`
	Reps      any `json:"reps"`
}

// Record coerces the raw values, substituting 0 for anything unparseable.
func (r RawSet) Record() SetRecord {
	return SetRecord{
		SetNumber: ParseInt(r.SetNumber, 0),
		Weight:    ParseFloat(r.Weight, 0),
		Reps:      ParseInt(r.Reps, 0),
	}
}

// DecodeSets decodes a JSON array of sets leniently. Malformed JSON yields no
// sets rather than an error.
func DecodeSets(data []byte) []SetRecord {
	if len(data) == 0 {
		return nil
	}
	var raw []RawSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make([]SetRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.Record())
	}
	return out
}
