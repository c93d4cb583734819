package engine

// VolumeSummary is the per-exercise reduction of a session's valid sets.
type VolumeSummary struct {
	VolumeLoad float64 `json:"volume_load"`
	SetsCount  int     `json:"sets_count"`
	RepsCount  int     `json:"reps_count"`
	MaxWeight  float64 `json:"max_weight"`
}

// Summarize reduces sets to a VolumeSummary. ok is false when no set is valid.
func Summarize(sets []SetRecord) (sum VolumeSummary, ok bool) {
	for _, s := range sets {
		if !s.Valid() {
			continue
		}
		sum.VolumeLoad += s.Weight * float64(s.Reps)
		sum.SetsCount++
		sum.RepsCount += s.Reps
		if s.Weight > sum.MaxWeight {
			sum.MaxWeight = s.Weight
		}
	}
	return sum, sum.SetsCount > 0
}

// Aggregate maps each exercise with at least one valid set to its summary.
// Exercises without valid sets are omitted. Repeated identifiers within one
// session are merged into a single summary.
func Aggregate(exercises []ExerciseEntry) map[string]VolumeSummary {
	out := make(map[string]VolumeSummary)
	for _, ex := range exercises {
		sum, ok := Summarize(ex.Sets)
		if !ok {
			continue
		}
		if prev, seen := out[ex.Exercise]; seen {
			sum.VolumeLoad += prev.VolumeLoad
			sum.SetsCount += prev.SetsCount
			sum.RepsCount += prev.RepsCount
			sum.MaxWeight = max(sum.MaxWeight, prev.MaxWeight)
		}
		out[ex.Exercise] = sum
	}
	return out
}

// TotalVolume is the volume load over every valid set of the session.
func TotalVolume(exercises []ExerciseEntry) float64 {
	var total float64
	for _, sum := range Aggregate(exercises) {
		total += sum.VolumeLoad
	}
	return total
}
