package insights

import (
	"time"
)

// WeeklyMetrics summarizes the trailing training window.
type WeeklyMetrics struct {
	TotalSets                       int     `json:"totalSets"`
	WorkoutDays                     int     `json:"workoutDays"`
	AverageRestBetweenWorkoutsHours float64 `json:"averageRestBetweenWorkoutsHours"`
}

func (e *Engine) WeeklyMetrics(history []WorkoutRecord, now time.Time) WeeklyMetrics {
	week := sessionsSince(history, windowStart(now, e.thresholds.WeeklyWindowDays))

	totalSets := 0
	days := make(map[string]struct{})
	for _, w := range week {
		for _, ex := range w.Exercises {
			totalSets += len(ex.Sets)
		}
		days[w.Date.Format("2006-01-02")] = struct{}{}
	}

	avgRest := e.thresholds.DefaultRecoveryHours
	if gap, ok := meanGapHours(week); ok {
		avgRest = gap
	}

	return WeeklyMetrics{
		TotalSets:                       totalSets,
		WorkoutDays:                     len(days),
		AverageRestBetweenWorkoutsHours: avgRest,
	}
}

// meanGapHours averages the gaps between consecutive sessions. It reports
// false when there are fewer than two sessions.
func meanGapHours(sessions []WorkoutRecord) (float64, bool) {
	if len(sessions) < 2 {
		return 0, false
	}
	sorted := chronological(sessions)
	var total float64
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].Date.Sub(sorted[i-1].Date).Hours()
	}
	return total / float64(len(sorted)-1), true
}

func (e *Engine) overtrainingAlerts(history []WorkoutRecord, now time.Time) []OvertrainingAlert {
	t := e.thresholds
	m := e.WeeklyMetrics(history, now)

	alerts := []OvertrainingAlert{}
	if m.TotalSets > t.MaxWeeklySets {
		alerts = append(alerts, OvertrainingAlert{
			Severity:       SeverityWarning,
			Type:           AlertVolume,
			Message:        "very high training volume detected",
			Recommendation: "consider reducing the number of sets or exercises",
			Metrics: AlertMetrics{
				Current:   float64(m.TotalSets),
				Threshold: float64(t.MaxWeeklySets),
				Unit:      "sets/week",
			},
		})
	}

	if m.WorkoutDays > t.MaxWorkoutDays {
		alerts = append(alerts, OvertrainingAlert{
			Severity:       SeverityDanger,
			Type:           AlertFrequency,
			Message:        "training too frequently",
			Recommendation: "include at least one full rest day per week",
			Metrics: AlertMetrics{
				Current:   float64(m.WorkoutDays),
				Threshold: float64(t.MaxWorkoutDays),
				Unit:      "days/week",
			},
		})
	}

	if m.AverageRestBetweenWorkoutsHours < t.MinRecoveryHours {
		alerts = append(alerts, OvertrainingAlert{
			Severity:       SeverityWarning,
			Type:           AlertRecovery,
			Message:        "insufficient recovery time",
			Recommendation: "increase the interval between intense workouts",
			Metrics: AlertMetrics{
				Current:   roundHalfUp(m.AverageRestBetweenWorkoutsHours, 2),
				Threshold: t.MinRecoveryHours,
				Unit:      "hours",
			},
		})
	}

	return alerts
}
