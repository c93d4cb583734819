package engine

import (
	"fmt"
	"time"
)

// DoubleIncrement is the weight added when the top of the rep range is reached.
const DoubleIncrement = 2.5

// Double progression defaults for new plans.
const (
	DefaultMinReps = 8
	DefaultMaxReps = 12
)

// DoubleStatus is the state of a double progression plan.
type DoubleStatus string

const (
	StatusMaintaining     DoubleStatus = "maintaining"
	StatusProgressing     DoubleStatus = "progressing"
	StatusReadyToIncrease DoubleStatus = "ready_for_weight_increase"
)

// Outcome is the result of recording performed reps.
type Outcome string

const (
	OutcomeWeightIncreased Outcome = "weight_increased"
	OutcomeRepsIncreased   Outcome = "reps_increased"
	OutcomeNoProgression   Outcome = "no_progression"
)

// Progressed reports whether the plan changed.
func (o Outcome) Progressed() bool {
	return o != OutcomeNoProgression
}

// DoublePlan advances reps within [MinReps, MaxReps], then adds weight and
// drops back to MinReps.
type DoublePlan struct {
	Exercise      string     `json:"exercise"`
	CurrentWeight float64    `json:"current_weight"`
	MinReps       int        `json:"min_reps"`
	MaxReps       int        `json:"max_reps"`
	CurrentReps   int        `json:"current_reps"`
	LastIncrease  *time.Time `json:"last_increase_date,omitempty"`
	IncreaseCount int        `json:"increase_count"`
}

// Status derives the plan state from the current rep target.
func (p DoublePlan) Status() DoubleStatus {
	switch {
	case p.CurrentReps >= p.MaxReps:
		return StatusReadyToIncrease
	case p.CurrentReps > p.MinReps:
		return StatusProgressing
	default:
		return StatusMaintaining
	}
}

// Record applies the reps performed in today's session.
func (p DoublePlan) Record(performed int, today time.Time) (DoublePlan, Outcome) {
	switch {
	case performed >= p.MaxReps:
		day := civilDay(today)
		p.CurrentWeight += DoubleIncrement
		p.CurrentReps = p.MinReps
		p.LastIncrease = &day
		p.IncreaseCount++
		return p, OutcomeWeightIncreased
	case performed >= p.CurrentReps:
		p.CurrentReps = min(performed, p.MaxReps)
		return p, OutcomeRepsIncreased
	default:
		return p, OutcomeNoProgression
	}
}

// ProgressPercentage is the position of CurrentReps within the rep range.
func (p DoublePlan) ProgressPercentage() float64 {
	span := p.MaxReps - p.MinReps
	if span <= 0 {
		return 0
	}
	pct := float64(p.CurrentReps-p.MinReps) / float64(span) * 100
	return min(100, max(0, pct))
}

// NextAction describes what to do in the next session.
func (p DoublePlan) NextAction() string {
	switch p.Status() {
	case StatusReadyToIncrease:
		return fmt.Sprintf("Increase weight to %gkg and reset to %d reps", p.CurrentWeight+DoubleIncrement, p.MinReps)
	case StatusProgressing:
		return fmt.Sprintf("Keep the current weight and aim for %d reps", p.CurrentReps+1)
	default:
		return fmt.Sprintf("Focus on technique, target %d reps", p.MinReps+1)
	}
}

// Instructions is what a user needs for the next session of a plan.
type Instructions struct {
	Exercise           string       `json:"exercise"`
	Weight             float64      `json:"weight"`
	TargetReps         int          `json:"target_reps"`
	MinReps            int          `json:"min_reps"`
	MaxReps            int          `json:"max_reps"`
	Status             DoubleStatus `json:"status"`
	NextAction         string       `json:"next_action"`
	ProgressPercentage float64      `json:"progress_percentage"`
}

func (p DoublePlan) Instructions() Instructions {
	return Instructions{
		Exercise:           p.Exercise,
		Weight:             p.CurrentWeight,
		TargetReps:         p.CurrentReps,
		MinReps:            p.MinReps,
		MaxReps:            p.MaxReps,
		Status:             p.Status(),
		NextAction:         p.NextAction(),
		ProgressPercentage: p.ProgressPercentage(),
	}
}
