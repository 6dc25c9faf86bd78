package insights

import "time"

func (e *Engine) weeklyAnalysis(history []WorkoutRecord, now time.Time) WeeklyAnalysis {
	week := sessionsSince(history, windowStart(now, e.thresholds.WeeklyWindowDays))
	return WeeklyAnalysis{
		TotalVolume:      roundHalfUp(totalVolume(week), 2),
		AverageIntensity: roundHalfUp(averageIntensity(week), 2),
		RecoveryScore:    recoveryScore(week),
		ProgressTrend:    e.progressTrend(history),
	}
}

// totalVolume sums weight x reps over every set.
func totalVolume(sessions []WorkoutRecord) float64 {
	var volume float64
	for _, w := range sessions {
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				volume += s.Weight * float64(s.Reps)
			}
		}
	}
	return volume
}

// averageIntensity is the mean of (hours x exercise count) per session.
func averageIntensity(sessions []WorkoutRecord) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var sum float64
	for _, w := range sessions {
		sum += float64(w.DurationMinutes) / 60 * float64(len(w.Exercises))
	}
	return sum / float64(len(sessions))
}

func recoveryScore(sessions []WorkoutRecord) int {
	gap, ok := meanGapHours(sessions)
	if !ok {
		return 80
	}
	switch {
	case gap >= 24 && gap <= 48:
		return 90
	case gap >= 12 && gap <= 72:
		return 70
	default:
		return 50
	}
}

// progressScore compares the volume of the latest sessions with the window
// right before them.
func (e *Engine) progressScore(history []WorkoutRecord) float64 {
	n := e.thresholds.TrendWindowSessions
	if n <= 0 || len(history) < n {
		return 50
	}

	recent := totalVolume(history[len(history)-n:])
	oldStart := len(history) - 2*n
	if oldStart < 0 {
		oldStart = 0
	}
	old := totalVolume(history[oldStart : len(history)-n])
	if old == 0 {
		return 70
	}

	score := 50 + (recent-old)/old*100
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func (e *Engine) progressTrend(history []WorkoutRecord) Trend {
	score := e.progressScore(history)
	switch {
	case score > 70:
		return TrendImproving
	case score > 40:
		return TrendPlateau
	default:
		return TrendDeclining
	}
}
