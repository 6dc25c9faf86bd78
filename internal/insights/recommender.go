package insights

import (
	"fmt"
	"strings"
	"time"
)

func (e *Engine) exerciseRecommendations(history []WorkoutRecord, now time.Time) []ExerciseRecommendation {
	t := e.thresholds
	var recs []ExerciseRecommendation

	freq := e.MuscleGroupFrequency(history)
	recent := recentExercises(history, windowStart(now, t.RecentWindowDays))

	for _, g := range UnderworkedMuscles(freq, t.UnderworkedRatio) {
		candidates := truncate(ComplementaryExercises(g), t.BalancePicksPerGroup)
		for _, name := range candidates {
			if recent[name] {
				continue
			}
			recs = append(recs, ExerciseRecommendation{
				Name:            name,
				Reason:          fmt.Sprintf("muscle group %q is being undertrained", g),
				Priority:        PriorityHigh,
				Category:        CategoryFor(g),
				SuggestedSets:   3,
				SuggestedReps:   "8-12",
				SuggestedWeight: "moderate",
				MuscleGroups:    []string{string(g)},
			})
		}
	}

	for _, name := range truncate(e.mostFrequentExercises(history), t.ProgressionCandidates) {
		if rec, ok := e.suggestProgression(name, history); ok {
			recs = append(recs, rec)
		}
	}

	if e.needsWarmup(history) {
		recs = append(recs, ExerciseRecommendation{
			Name:            "Warm-up Exercises",
			Reason:          "little warm-up detected in your workouts",
			Priority:        PriorityMedium,
			Category:        "Warm-up",
			SuggestedSets:   2,
			SuggestedReps:   "10-15",
			SuggestedWeight: "light",
			MuscleGroups:    []string{"mobility"},
		})
	}

	return truncate(recs, t.MaxExerciseRecommendations)
}

// suggestProgression looks at the latest occurrence of the exercise and
// proposes a slightly heavier load when it was performed with weight.
func (e *Engine) suggestProgression(name string, history []WorkoutRecord) (ExerciseRecommendation, bool) {
	var last *ExerciseEntry
	for i := range history {
		for j := range history[i].Exercises {
			if history[i].Exercises[j].Name == name {
				last = &history[i].Exercises[j]
			}
		}
	}
	if last == nil {
		return ExerciseRecommendation{}, false
	}

	avgWeight := averageSetWeight(last.Sets, 1)
	if avgWeight <= 0 {
		return ExerciseRecommendation{}, false
	}

	category := generalCategory
	groups := []string{}
	if entry, ok := e.catalog.Lookup(name); ok {
		category = entry.Category
		for _, g := range entry.MuscleGroups {
			groups = append(groups, string(g))
		}
	}

	sets := len(last.Sets)
	if sets == 0 {
		sets = 3
	}

	return ExerciseRecommendation{
		Name:            name,
		Reason:          "progress detected, time to increase the load",
		Priority:        PriorityHigh,
		Category:        category,
		SuggestedSets:   sets,
		SuggestedReps:   "8-10",
		SuggestedWeight: formatKg(avgWeight, e.thresholds.SuggestionFactor),
		MuscleGroups:    groups,
	}, true
}

// needsWarmup reports whether none of the most recent sessions contains a
// warm-up style exercise.
func (e *Engine) needsWarmup(history []WorkoutRecord) bool {
	lookback := e.thresholds.WarmupLookbackSessions
	start := len(history) - lookback
	if start < 0 {
		start = 0
	}
	for _, w := range history[start:] {
		for _, ex := range w.Exercises {
			lower := strings.ToLower(ex.Name)
			for _, kw := range e.thresholds.WarmupKeywords {
				if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
					return false
				}
			}
		}
	}
	return true
}

// averageSetWeight divides the summed set weight by the set count, or by
// emptyDivisor when there are no sets.
func averageSetWeight(sets []SetEntry, emptyDivisor int) float64 {
	var sum float64
	for _, s := range sets {
		sum += s.Weight
	}
	n := len(sets)
	if n == 0 {
		n = emptyDivisor
	}
	return sum / float64(n)
}
