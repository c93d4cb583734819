package engine

import (
	"math"
	"time"
)

// DefaultTargetReps is the rep target a linear plan checks against.
const DefaultTargetReps = 8

// Linear plan defaults.
const (
	DefaultWeightIncrement = 2.5
	DefaultRepsIncrement   = 1
)

// LinearPlan advances one variable, the working weight, once the rep target is met.
type LinearPlan struct {
	Exercise        string  `json:"exercise"`
	CurrentWeight   float64 `json:"current_weight"`
	TargetWeight    float64 `json:"target_weight"`
	WeightIncrement float64 `json:"weight_increment"`
	RepsIncrement   int     `json:"reps_increment"`
}

// NextWeight returns the weight for the next session given the reps performed
// in the most recent set. It does not modify the plan.
func (p LinearPlan) NextWeight(performedReps, targetReps int) float64 {
	if performedReps >= targetReps {
		return p.CurrentWeight + p.WeightIncrement
	}
	return p.CurrentWeight
}

// ETA describes how far a linear plan is from its target.
type ETA struct {
	RemainingWeight float64   `json:"remaining_weight"`
	Weeks           int       `json:"eta_weeks"`
	EstimatedDate   time.Time `json:"estimated_date"`
}

// ETA assumes one increment per week.
func (p LinearPlan) ETA(today time.Time) ETA {
	remaining := max(0, p.TargetWeight-p.CurrentWeight)
	weeks := 0
	if p.WeightIncrement > 0 {
		weeks = int(remaining / p.WeightIncrement)
		if math.Mod(remaining, p.WeightIncrement) > 1e-9 {
			weeks++
		}
	}
	return ETA{
		RemainingWeight: remaining,
		Weeks:           weeks,
		EstimatedDate:   civilDay(today).AddDate(0, 0, 7*weeks),
	}
}

// WeightPoint is the heaviest set of one session.
type WeightPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// ProjectionPoint is one week of a forecast.
type ProjectionPoint struct {
	Week   int     `json:"week"`
	Weight float64 `json:"weight"`
}

// ForecastResult estimates the time to reach a target weight.
type ForecastResult struct {
	EstimatedWeeks     float64           `json:"estimated_weeks"`
	EstimatedMonths    float64           `json:"estimated_months"`
	AvgIncreasePerWeek float64           `json:"avg_increase_per_week"`
	Projection         []ProjectionPoint `json:"progression_data"`
}

const (
	defaultWeeklyGain = 2.5
	defaultFrequency  = 2
	maxForecastWeeks  = 52
	weeksPerMonth     = 4.33
)

// Forecast projects weekly progress from current to target weight.
//
// The weekly gain is measured between the first and last points of history
// (ordered by date) when it shows an increase, and defaults to 2.5 kg
// otherwise. Gain is scaled by frequency/2 sessions per week. The projection
// stops at 52 weeks and always ends with the target.
func Forecast(current, target float64, history []WeightPoint, frequency int) ForecastResult {
	if frequency <= 0 {
		frequency = defaultFrequency
	}

	gain := defaultWeeklyGain
	if len(history) > 1 {
		first, last := history[0], history[len(history)-1]
		increase := last.Weight - first.Weight
		weeks := last.Date.Sub(first.Date).Hours() / 24 / 7
		if increase > 0 && weeks > 0 {
			gain = increase / weeks
		}
	}
	perWeek := gain * float64(frequency) / 2

	var weeks float64
	if diff := target - current; diff > 0 {
		weeks = diff / perWeek
	}
	weeks = max(1, weeks)

	var projection []ProjectionPoint
	w := current
	week := 0
	for w < target && week < maxForecastWeeks {
		projection = append(projection, ProjectionPoint{Week: week + 1, Weight: round1(w)})
		w += perWeek
		week++
	}
	projection = append(projection, ProjectionPoint{Week: week + 1, Weight: target})

	return ForecastResult{
		EstimatedWeeks:     round1(weeks),
		EstimatedMonths:    round1(weeks / weeksPerMonth),
		AvgIncreasePerWeek: round2(gain),
		Projection:         projection,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 keeps quarter-kilo increments such as 1.25 intact.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
