package engine

import "time"

// Goal is a lift target for one exercise.
type Goal struct {
	Exercise      string     `json:"exercise"`
	TargetWeight  float64    `json:"target_weight"`
	TargetReps    int        `json:"target_reps"`
	TargetSets    int        `json:"target_sets"`
	CurrentWeight float64    `json:"current_weight"`
	CurrentReps   int        `json:"current_reps"`
	CurrentSets   int        `json:"current_sets"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Completed     bool       `json:"is_completed"`
}

// Goal defaults applied when a target is not supplied.
const (
	DefaultGoalReps = 8
	DefaultGoalSets = 3
)

// Evaluate refreshes the goal's current values from the most recent entry in
// history for the goal's exercise and recomputes Completed.
//
// Weight and reps maxima are taken independently and may come from different
// sets. When no entry matches, or the latest match has no valid sets, the
// current values are kept. Completed is recomputed from scratch, so a worse
// latest session can clear it.
func Evaluate(g Goal, history []DatedEntry) Goal {
	latest, ok := latestEntry(history, g.Exercise)
	if ok {
		var weight float64
		var reps, sets int
		for _, s := range latest.ValidSets() {
			weight = max(weight, s.Weight)
			reps = max(reps, s.Reps)
			sets++
		}
		if sets > 0 {
			g.CurrentWeight = weight
			g.CurrentReps = reps
			g.CurrentSets = sets
		}
	}

	g.Completed = g.CurrentWeight >= g.TargetWeight &&
		g.CurrentReps >= g.TargetReps &&
		g.CurrentSets >= g.TargetSets
	return g
}

// latestEntry returns the matching entry with the latest date. On equal dates
// the later element of history wins.
func latestEntry(history []DatedEntry, exercise string) (ExerciseEntry, bool) {
	var best DatedEntry
	found := false
	for _, h := range history {
		if h.Entry.Exercise != exercise {
			continue
		}
		if !found || !h.Date.Before(best.Date) {
			best = h
			found = true
		}
	}
	return best.Entry, found
}

// ProgressPercentage is current weight as a share of target weight, capped at 100.
func (g Goal) ProgressPercentage() float64 {
	if g.TargetWeight <= 0 {
		return 0
	}
	return min(g.CurrentWeight/g.TargetWeight*100, 100)
}

// DaysRemaining counts calendar days from today to the target date, never
// below zero.
func (g Goal) DaysRemaining(today time.Time) int {
	if g.TargetDate == nil {
		return 0
	}
	return max(0, daysBetween(today, *g.TargetDate))
}
