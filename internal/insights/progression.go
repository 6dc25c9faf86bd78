package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type ProgressionSample struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Reps   int       `json:"reps"`
}

// ExerciseProgression is the weight series of one exercise. Sessions counts
// every occurrence, including those logged without weight.
type ExerciseProgression struct {
	Exercise string              `json:"exercise"`
	Samples  []ProgressionSample `json:"samples"`
	Sessions int                 `json:"sessions"`
}

// Progressions builds per-exercise series in first-encounter order. The
// history must already be in chronological order.
func (e *Engine) Progressions(history []WorkoutRecord) []ExerciseProgression {
	index := make(map[string]int)
	var out []ExerciseProgression
	for _, w := range history {
		for _, ex := range w.Exercises {
			i, ok := index[ex.Name]
			if !ok {
				i = len(out)
				index[ex.Name] = i
				out = append(out, ExerciseProgression{Exercise: ex.Name})
			}
			for _, s := range ex.Sets {
				if s.Weight > 0 {
					out[i].Samples = append(out[i].Samples, ProgressionSample{
						Date:   w.Date,
						Weight: s.Weight,
						Reps:   s.Reps,
					})
				}
			}
			out[i].Sessions++
		}
	}
	return out
}

func (e *Engine) loadPredictions(history []WorkoutRecord) []LoadPrediction {
	var predictions []LoadPrediction
	for _, p := range e.Progressions(history) {
		if len(predictions) == e.thresholds.MaxLoadPredictions {
			break
		}
		if pred, ok := e.PredictNextLoad(p); ok {
			predictions = append(predictions, pred)
		}
	}
	return predictions
}

// PredictNextLoad classifies the latest session-over-session change and
// projects the next target weight. It needs at least MinPredictionSessions
// sessions and as many weighted samples.
func (e *Engine) PredictNextLoad(p ExerciseProgression) (LoadPrediction, bool) {
	t := e.thresholds
	if p.Sessions < t.MinPredictionSessions || len(p.Samples) < t.MinPredictionSessions || len(p.Samples) < 2 {
		return LoadPrediction{}, false
	}

	current := p.Samples[len(p.Samples)-1].Weight
	previous := p.Samples[len(p.Samples)-2].Weight
	if previous <= 0 {
		previous = current
	}
	rate := (current - previous) / previous

	progression := ProgressionConservative
	factor := t.ConservativeFactor
	switch {
	case rate > t.AggressiveRate:
		progression = ProgressionAggressive
		factor = t.AggressiveFactor
	case rate > t.LinearRate:
		progression = ProgressionLinear
		factor = t.LinearFactor
	}

	return LoadPrediction{
		Exercise:        p.Exercise,
		CurrentWeight:   current,
		PredictedWeight: scaleRound(current, factor, 2),
		ProgressionType: progression,
		Confidence:      e.confidence(p.Sessions),
		Reason:          progressionReason(progression, p.Sessions),
	}, true
}

func (e *Engine) confidence(sessions int) int {
	t := e.thresholds
	c := t.BaseConfidence + t.ConfidencePerSession*sessions
	if c > t.MaxConfidence {
		return t.MaxConfidence
	}
	return c
}

func progressionReason(p ProgressionType, sessions int) string {
	switch p {
	case ProgressionAggressive:
		return fmt.Sprintf("excellent progress based on %d sessions", sessions)
	case ProgressionLinear:
		return "steady progress, keep it up"
	default:
		return "conservative progression recommended"
	}
}

// roundHalfUp rounds on the shortest decimal representation of v, so that
// 56.375 becomes 56.38 even though its binary value is slightly below.
func roundHalfUp(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// scaleRound multiplies in decimal arithmetic before rounding, so 55 x 1.025
// gives 56.38 and not the 56.37 a float product would round to.
func scaleRound(v, factor float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(factor)).Round(places).Float64()
	return f
}

func formatKg(v, factor float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(factor)).StringFixed(1) + "kg"
}
