package engine

import "time"

// DefaultStreakType is the streak advanced by logging a workout.
const DefaultStreakType = "workout"

// Streak counts consecutive days with logged activity.
type Streak struct {
	Type         string     `json:"streak_type"`
	Current      int        `json:"current_streak"`
	Longest      int        `json:"longest_streak"`
	LastActivity *time.Time `json:"last_activity_date,omitempty"`
}

// Record applies one activity on today and returns the new state. Only the
// calendar date of today matters. Recording the same day twice is a no-op.
func (s Streak) Record(today time.Time) Streak {
	day := civilDay(today)

	switch {
	case s.LastActivity == nil:
		s.Current = 1
	case daysBetween(*s.LastActivity, day) == 0:
		return s
	case daysBetween(*s.LastActivity, day) == 1:
		s.Current++
	default:
		s.Current = 1
	}
	s.LastActivity = &day

	if s.Longest < 0 {
		s.Longest = 0
	}
	s.Longest = max(s.Longest, s.Current)
	return s
}

// Milestone labels the current streak for user-facing messages.
type Milestone string

const (
	MilestoneNone    Milestone = "none"
	MilestoneOngoing Milestone = "ongoing"
	MilestoneFive    Milestone = "five_days"
	MilestoneWeek    Milestone = "week"
)

// Milestone reports which celebration, if any, the current streak earns.
func (s Streak) Milestone() Milestone {
	switch {
	case s.Current <= 1:
		return MilestoneNone
	case s.Current%7 == 0:
		return MilestoneWeek
	case s.Current%5 == 0:
		return MilestoneFive
	default:
		return MilestoneOngoing
	}
}

// civilDay drops the time of day, keeping the calendar date of t in its own
// location, and returns it as midnight UTC.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(civilDay(b).Sub(civilDay(a)).Hours() / 24)
}
