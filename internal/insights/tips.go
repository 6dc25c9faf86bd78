package insights

import "math"

// UserPatterns holds the whole-history scores the tips are derived from.
type UserPatterns struct {
	ConsistencyScore       float64 `json:"consistencyScore"`
	AverageWorkoutDuration float64 `json:"averageWorkoutDuration"`
	VarietyScore           float64 `json:"varietyScore"`
	ProgressionRate        float64 `json:"progressionRate"`
}

func (e *Engine) UserPatterns(history []WorkoutRecord) UserPatterns {
	total := len(history)
	if total == 0 {
		return UserPatterns{}
	}

	var minutes int
	distinct := make(map[string]struct{})
	for _, w := range history {
		minutes += w.DurationMinutes
		for _, ex := range w.Exercises {
			distinct[ex.Name] = struct{}{}
		}
	}

	baseline := e.thresholds.ConsistencyBaselinePerWeek
	if baseline <= 0 {
		baseline = 4
	}

	return UserPatterns{
		ConsistencyScore:       math.Min(100, float64(total)/baseline*25),
		AverageWorkoutDuration: float64(minutes) / float64(total),
		VarietyScore:           math.Min(100, float64(len(distinct))/float64(total)*100),
		// a fixed rate, not measured from the history
		ProgressionRate: e.thresholds.ProgressionRate,
	}
}

func (e *Engine) personalizedTips(history []WorkoutRecord) []string {
	t := e.thresholds
	p := e.UserPatterns(history)

	var tips []string
	if p.ConsistencyScore < t.MinConsistencyScore {
		tips = append(tips, "🎯 Try to keep a more consistent routine. Regularity is key to progress!")
	}
	if p.AverageWorkoutDuration < t.MinWorkoutMinutes {
		tips = append(tips, "⏱️ Your workouts are short. Consider increasing them to 45-60 minutes.")
	}
	if p.VarietyScore < t.MinVarietyScore {
		tips = append(tips, "🔄 Add more variety to your exercises to stimulate different muscles.")
	}
	if p.ProgressionRate > t.GreatProgressRate {
		tips = append(tips, "🚀 Great progress! Keep increasing the loads gradually.")
	} else {
		tips = append(tips, "📈 Try increasing loads or reps every 2-3 weeks.")
	}

	return truncate(tips, t.MaxTips)
}
