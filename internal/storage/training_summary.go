package storage

import (
	"context"
	"fmt"
	"time"
)

// ExercisePeriodSummary holds aggregated volume for one exercise within a period.
type ExercisePeriodSummary struct {
	Exercise    string  `json:"exercise"`
	Sessions    int     `json:"sessions"`
	WorkingSets int     `json:"working_sets"`
	TotalReps   int     `json:"total_reps"`
	VolumeLoad  float64 `json:"volume_load"`
	MaxWeight   float64 `json:"max_weight"`
}

// TrainingSummaryPeriod holds session totals and per-exercise volume for one period.
type TrainingSummaryPeriod struct {
	Period        string                  `json:"period"`
	Sessions      int                     `json:"sessions"`
	TotalCalories float64                 `json:"total_calories"`
	AvgDuration   float64                 `json:"avg_duration_minutes"`
	Exercises     []ExercisePeriodSummary `json:"exercises"`
}

// GetTrainingSummary returns session and per-exercise volume stats per period.
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]TrainingSummaryPeriod, error) {
	sessionRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, date)::date AS period,
		        COUNT(*)::int,
		        COALESCE(SUM(total_calories), 0),
		        AVG(duration_minutes)
		 FROM workout_sessions
		 WHERE date >= $2 AND date < $3 AND user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying session summary: %w", err)
	}
	defer sessionRows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for sessionRows.Next() {
		var periodTime time.Time
		p := TrainingSummaryPeriod{}
		if err := sessionRows.Scan(&periodTime, &p.Sessions, &p.TotalCalories, &p.AvgDuration); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		p.Period = periodTime.Format("2006-01-02")
		periodMap[p.Period] = &p
		periodOrder = append(periodOrder, p.Period)
	}
	if err := sessionRows.Err(); err != nil {
		return nil, err
	}

	exerciseRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, date)::date AS period,
		        exercise,
		        COUNT(DISTINCT session_id)::int,
		        SUM(sets_count)::int,
		        SUM(reps_count)::int,
		        SUM(volume_load),
		        MAX(max_weight)
		 FROM volume_loads
		 WHERE date >= $2 AND date < $3 AND user_id = $4
		 GROUP BY period, exercise
		 ORDER BY period DESC, SUM(volume_load) DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise summary: %w", err)
	}
	defer exerciseRows.Close()

	for exerciseRows.Next() {
		var periodTime time.Time
		var es ExercisePeriodSummary
		if err := exerciseRows.Scan(&periodTime, &es.Exercise, &es.Sessions, &es.WorkingSets,
			&es.TotalReps, &es.VolumeLoad, &es.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning exercise summary: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingSummaryPeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		periodMap[key].Exercises = append(periodMap[key].Exercises, es)
	}
	if err := exerciseRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week", "week":
		return "week"
	case "1 month", "month":
		return "month"
	default:
		return "month"
	}
}
