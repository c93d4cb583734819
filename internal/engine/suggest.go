package engine

import (
	"fmt"
	"sort"
)

// Trend summarizes how the max weight moved over recent sessions.
type Trend string

const (
	TrendNone           Trend = ""
	TrendSteadyProgress Trend = "steady_progress"
	TrendPlateau        Trend = "plateau"
)

// WeightSuggestion is a proposed load for the next session of an exercise.
type WeightSuggestion struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Reason string  `json:"reason"`
	Trend  Trend   `json:"trend,omitempty"`
}

// LastSession summarizes the entry a suggestion was based on.
type LastSession struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"max_weight"`
	MinReps   int     `json:"min_reps"`
	MaxReps   int     `json:"max_reps"`
	SetsCount int     `json:"sets_count"`
}

// Suggestion is the answer to "what should I lift next time". Suggestion is
// nil when there is nothing to base it on, and Message says why.
type Suggestion struct {
	Suggestion  *WeightSuggestion `json:"suggestion"`
	LastSession *LastSession      `json:"last_session,omitempty"`
	Message     string            `json:"message,omitempty"`
}

const (
	suggestMinWeight = 20.0
	trendWindow      = 3
)

// Suggest proposes the next working weight from the most recent entries of
// one exercise. recent may be in any order; it is sorted newest first.
func Suggest(recent []DatedEntry) Suggestion {
	if len(recent) == 0 {
		return Suggestion{Message: "No history for this exercise yet. Start with a comfortable weight."}
	}
	entries := make([]DatedEntry, len(recent))
	copy(entries, recent)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	latest := entries[0]
	valid := latest.Entry.ValidSets()
	if len(valid) == 0 {
		return Suggestion{Message: "The last session has no sets with weight and reps."}
	}

	maxWeight := valid[0].Weight
	minReps, maxReps, totalReps := valid[0].Reps, valid[0].Reps, 0
	for _, s := range valid {
		maxWeight = max(maxWeight, s.Weight)
		minReps = min(minReps, s.Reps)
		maxReps = max(maxReps, s.Reps)
		totalReps += s.Reps
	}
	avgReps := float64(totalReps) / float64(len(valid))

	weight := maxWeight
	reason := fmt.Sprintf("Repeat %gkg and aim for more reps", weight)
	switch {
	case minReps >= 10:
		weight = round2(maxWeight + 2.5)
		reason = fmt.Sprintf("Great result, increase to %gkg", weight)
	case avgReps >= 8:
		weight = round2(maxWeight + 1.25)
		reason = fmt.Sprintf("Good progress, try %gkg", weight)
	case maxReps < 6:
		weight = round2(max(suggestMinWeight, maxWeight-2.5))
		reason = fmt.Sprintf("Drop to %gkg to keep technique clean", weight)
	case maxReps-minReps > 4:
		reason = fmt.Sprintf("Stay at %gkg and focus on consistency", weight)
	}

	trend := TrendNone
	if len(entries) > 1 {
		improvements := 0
		for i := 1; i < len(entries) && i <= trendWindow; i++ {
			prev, ok := Summarize(entries[i].Entry.Sets)
			if ok && maxWeight > prev.MaxWeight {
				improvements++
			}
		}
		switch {
		case improvements >= 2:
			trend = TrendSteadyProgress
		case improvements == 0 && len(entries) >= 3:
			trend = TrendPlateau
		}
	}

	return Suggestion{
		Suggestion: &WeightSuggestion{
			Weight: weight,
			Reps:   DefaultTargetReps,
			Reason: reason,
			Trend:  trend,
		},
		LastSession: &LastSession{
			Date:      latest.Date.Format("2006-01-02"),
			MaxWeight: maxWeight,
			MinReps:   minReps,
			MaxReps:   maxReps,
			SetsCount: len(valid),
		},
	}
}
