package insights

import (
	"sort"
	"time"
)

// PanicHook is notified when an analyzer panics. The analyzer's result is
// replaced with its empty value and the pipeline continues.
type PanicHook func(analyzer string, recovered any)

type Option func(*Engine)

func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
	}
}

func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithClock sets the reference time used for the trailing windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithPanicHook(hook PanicHook) Option {
	return func(e *Engine) {
		e.panicHook = hook
	}
}

// Engine derives AIInsights from a workout history. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	catalog    *Catalog
	thresholds Thresholds
	now        func() time.Time
	panicHook  PanicHook
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog:    DefaultCatalog(),
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// GenerateInsights runs every analyzer over the history. An empty history
// yields DefaultInsights.
func (e *Engine) GenerateInsights(history []WorkoutRecord) AIInsights {
	if len(history) == 0 {
		return DefaultInsights()
	}

	h := chronological(history)
	now := e.now()

	result := AIInsights{
		ExerciseRecommendations: guard(e, "exercise_recommendations", func() []ExerciseRecommendation {
			return e.exerciseRecommendations(h, now)
		}),
		RestRecommendations: guard(e, "rest_recommendations", func() []RestRecommendation {
			return e.restRecommendations(h)
		}),
		LoadPredictions: guard(e, "load_predictions", func() []LoadPrediction {
			return e.loadPredictions(h)
		}),
		OvertrainingAlerts: guard(e, "overtraining_alerts", func() []OvertrainingAlert {
			return e.overtrainingAlerts(h, now)
		}),
		WeeklyAnalysis: guard(e, "weekly_analysis", func() WeeklyAnalysis {
			return e.weeklyAnalysis(h, now)
		}),
		PersonalizedTips: guard(e, "personalized_tips", func() []string {
			return e.personalizedTips(h)
		}),
	}

	return normalize(result)
}

func guard[T any](e *Engine, analyzer string, fn func() T) (res T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = zero
			if e.panicHook != nil {
				e.panicHook(analyzer, r)
			}
		}
	}()
	return fn()
}

// chronological returns a copy of the history sorted by date, keeping the
// supplied order for sessions logged at the same instant.
func chronological(history []WorkoutRecord) []WorkoutRecord {
	h := make([]WorkoutRecord, len(history))
	copy(h, history)
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].Date.Before(h[j].Date)
	})
	return h
}

// normalize replaces nil slices so the JSON output always carries arrays.
func normalize(in AIInsights) AIInsights {
	if in.ExerciseRecommendations == nil {
		in.ExerciseRecommendations = []ExerciseRecommendation{}
	}
	if in.RestRecommendations == nil {
		in.RestRecommendations = []RestRecommendation{}
	}
	if in.LoadPredictions == nil {
		in.LoadPredictions = []LoadPrediction{}
	}
	if in.OvertrainingAlerts == nil {
		in.OvertrainingAlerts = []OvertrainingAlert{}
	}
	if in.PersonalizedTips == nil {
		in.PersonalizedTips = []string{}
	}
	if in.WeeklyAnalysis.ProgressTrend == "" {
		in.WeeklyAnalysis.ProgressTrend = TrendPlateau
	}
	return in
}

// DefaultInsights is returned when there is no history to analyze.
func DefaultInsights() AIInsights {
	return AIInsights{
		ExerciseRecommendations: []ExerciseRecommendation{
			{
				Name:            "Squat",
				Reason:          "Fundamental exercise for building leg strength",
				Priority:        PriorityHigh,
				Category:        "Legs",
				SuggestedSets:   3,
				SuggestedReps:   "8-12",
				SuggestedWeight: "moderate",
				MuscleGroups:    []string{string(Legs)},
			},
		},
		RestRecommendations: []RestRecommendation{},
		LoadPredictions:     []LoadPrediction{},
		OvertrainingAlerts:  []OvertrainingAlert{},
		WeeklyAnalysis: WeeklyAnalysis{
			TotalVolume:      0,
			AverageIntensity: 0,
			RecoveryScore:    80,
			ProgressTrend:    TrendPlateau,
		},
		PersonalizedTips: []string{
			"🎯 Start with basic exercises to build a solid foundation",
			"📈 Log your workouts so you can get personalized recommendations",
		},
	}
}

func truncate[T any](in []T, limit int) []T {
	if limit >= 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

func windowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func sessionsSince(h []WorkoutRecord, since time.Time) []WorkoutRecord {
	var out []WorkoutRecord
	for _, w := range h {
		if !w.Date.Before(since) {
			out = append(out, w)
		}
	}
	return out
}
