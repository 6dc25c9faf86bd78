package insights

import "time"

type MuscleGroup string

const (
	Chest     MuscleGroup = "chest"
	Back      MuscleGroup = "back"
	Legs      MuscleGroup = "legs"
	Shoulders MuscleGroup = "shoulders"
	Arms      MuscleGroup = "arms"
)

// AllMuscleGroups is the closed set of muscle groups, in the order used
// whenever the groups are iterated.
var AllMuscleGroups = []MuscleGroup{Chest, Back, Legs, Shoulders, Arms}

func (g MuscleGroup) Valid() bool {
	switch g {
	case Chest, Back, Legs, Shoulders, Arms:
		return true
	default:
		return false
	}
}

// SetEntry is a single logged set. Values are already coerced: missing or
// malformed input arrives here as 0.
type SetEntry struct {
	Reps        int      `json:"reps"`
	Weight      float64  `json:"weight"`
	RestSeconds *float64 `json:"restSeconds,omitempty"`
}

type ExerciseEntry struct {
	Name string     `json:"name"`
	Sets []SetEntry `json:"sets"`
}

// WorkoutRecord is one logged session.
type WorkoutRecord struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Exercises       []ExerciseEntry `json:"exercises"`
	Notes           string          `json:"notes,omitempty"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type ExerciseRecommendation struct {
	Name            string   `json:"name"`
	Reason          string   `json:"reason"`
	Priority        Priority `json:"priority"`
	Category        string   `json:"category"`
	SuggestedSets   int      `json:"suggestedSets"`
	SuggestedReps   string   `json:"suggestedReps"`
	SuggestedWeight string   `json:"suggestedWeight"`
	MuscleGroups    []string `json:"muscleGroups"`
}

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

type RestRecommendation struct {
	Exercise        string    `json:"exercise"`
	CurrentRest     float64   `json:"currentRest"`
	RecommendedRest int       `json:"recommendedRest"`
	Reason          string    `json:"reason"`
	Intensity       Intensity `json:"intensity"`
}

type ProgressionType string

const (
	ProgressionLinear       ProgressionType = "linear"
	ProgressionConservative ProgressionType = "conservative"
	ProgressionAggressive   ProgressionType = "aggressive"
)

type LoadPrediction struct {
	Exercise        string          `json:"exercise"`
	CurrentWeight   float64         `json:"currentWeight"`
	PredictedWeight float64         `json:"predictedWeight"`
	ProgressionType ProgressionType `json:"progressionType"`
	Confidence      int             `json:"confidence"`
	Reason          string          `json:"reason"`
}

type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityDanger   AlertSeverity = "danger"
	SeverityCritical AlertSeverity = "critical"
)

type AlertType string

const (
	AlertVolume    AlertType = "volume"
	AlertFrequency AlertType = "frequency"
	AlertIntensity AlertType = "intensity"
	AlertRecovery  AlertType = "recovery"
)

type AlertMetrics struct {
	Current   float64 `json:"current"`
	Threshold float64 `json:"threshold"`
	Unit      string  `json:"unit"`
}

type OvertrainingAlert struct {
	Severity       AlertSeverity `json:"severity"`
	Type           AlertType     `json:"type"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation"`
	Metrics        AlertMetrics  `json:"metrics"`
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendPlateau   Trend = "plateau"
	TrendDeclining Trend = "declining"
)

type WeeklyAnalysis struct {
	TotalVolume      float64 `json:"totalVolume"`
	AverageIntensity float64 `json:"averageIntensity"`
	RecoveryScore    int     `json:"recoveryScore"`
	ProgressTrend    Trend   `json:"progressTrend"`
}

// AIInsights is the aggregated engine output.
type AIInsights struct {
	ExerciseRecommendations []ExerciseRecommendation `json:"exerciseRecommendations"`
	RestRecommendations     []RestRecommendation     `json:"restRecommendations"`
	LoadPredictions         []LoadPrediction         `json:"loadPredictions"`
	OvertrainingAlerts      []OvertrainingAlert      `json:"overtrainingAlerts"`
	WeeklyAnalysis          WeeklyAnalysis           `json:"weeklyAnalysis"`
	PersonalizedTips        []string                 `json:"personalizedTips"`
}
