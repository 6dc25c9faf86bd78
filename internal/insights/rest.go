package insights

import (
	"fmt"
	"math"
)

type restPattern struct {
	exercise    string
	totalRest   float64
	totalWeight float64
	count       int
}

// estimateRest approximates the rest taken for one exercise occurrence from
// the load lifted. Explicit rest timing is not used.
func (e *Engine) estimateRest(avgWeight float64) float64 {
	switch {
	case avgWeight > e.thresholds.HeavyWeightKg:
		return 180
	case avgWeight > e.thresholds.ModerateWeightKg:
		return 150
	default:
		return 120
	}
}

func (e *Engine) intensityFor(avgWeight float64) Intensity {
	switch {
	case avgWeight > e.thresholds.HeavyWeightKg:
		return IntensityHigh
	case avgWeight > e.thresholds.ModerateWeightKg:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

func (e *Engine) restRecommendations(history []WorkoutRecord) []RestRecommendation {
	index := make(map[string]int)
	var patterns []*restPattern
	for _, w := range history {
		for _, ex := range w.Exercises {
			i, ok := index[ex.Name]
			if !ok {
				i = len(patterns)
				index[ex.Name] = i
				patterns = append(patterns, &restPattern{exercise: ex.Name})
			}
			// an occurrence without sets is treated as three empty sets
			avgWeight := averageSetWeight(ex.Sets, 3)
			patterns[i].totalRest += e.estimateRest(avgWeight)
			patterns[i].totalWeight += avgWeight
			patterns[i].count++
		}
	}

	var recs []RestRecommendation
	for _, p := range patterns {
		if len(recs) == e.thresholds.MaxRestRecommendations {
			break
		}
		optimal, known := e.catalog.OptimalRest(p.exercise)
		if !known {
			continue
		}
		observed := p.totalRest / float64(p.count)
		if math.Abs(observed-float64(optimal)) <= e.thresholds.RestToleranceSeconds {
			continue
		}

		intensity := e.intensityFor(p.totalWeight / float64(p.count))
		recs = append(recs, RestRecommendation{
			Exercise:        p.exercise,
			CurrentRest:     roundHalfUp(observed, 2),
			RecommendedRest: optimal,
			Reason:          restReason(observed, float64(optimal), intensity),
			Intensity:       intensity,
		})
	}
	return recs
}

func restReason(observed, optimal float64, intensity Intensity) string {
	if observed < optimal {
		return fmt.Sprintf("rest too short for %s intensity", intensity)
	}
	return "rest too long, may reduce efficiency"
}
