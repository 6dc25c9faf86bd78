package insights

// Thresholds carries every tunable constant the analyzers use.
// The same values apply to every user.
type Thresholds struct {
	// frequency / recommendations
	UnderworkedRatio       float64
	RecentWindowDays       int
	BalancePicksPerGroup   int
	ProgressionCandidates  int
	WarmupLookbackSessions int
	WarmupKeywords         []string

	// load prediction
	MinPredictionSessions int
	AggressiveRate        float64
	LinearRate            float64
	AggressiveFactor      float64
	LinearFactor          float64
	ConservativeFactor    float64
	BaseConfidence        int
	ConfidencePerSession  int
	MaxConfidence         int
	SuggestionFactor      float64

	// rest
	RestToleranceSeconds float64
	HeavyWeightKg        float64
	ModerateWeightKg     float64

	// overtraining / weekly
	WeeklyWindowDays     int
	MaxWeeklySets        int
	MaxWorkoutDays       int
	MinRecoveryHours     float64
	DefaultRecoveryHours float64
	TrendWindowSessions  int

	// tips
	ConsistencyBaselinePerWeek float64
	MinConsistencyScore        float64
	MinWorkoutMinutes          float64
	MinVarietyScore            float64
	ProgressionRate            float64
	GreatProgressRate          float64

	// caps
	MaxExerciseRecommendations int
	MaxRestRecommendations     int
	MaxLoadPredictions         int
	MaxTips                    int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		UnderworkedRatio:       0.7,
		RecentWindowDays:       7,
		BalancePicksPerGroup:   2,
		ProgressionCandidates:  3,
		WarmupLookbackSessions: 5,
		WarmupKeywords:         []string{"warm", "treadmill", "bike", "stretch"},

		MinPredictionSessions: 3,
		AggressiveRate:        0.10,
		LinearRate:            0.05,
		AggressiveFactor:      1.05,
		LinearFactor:          1.025,
		ConservativeFactor:    1.01,
		BaseConfidence:        60,
		ConfidencePerSession:  5,
		MaxConfidence:         95,
		SuggestionFactor:      1.05,

		RestToleranceSeconds: 30,
		HeavyWeightKg:        100,
		ModerateWeightKg:     50,

		WeeklyWindowDays:     7,
		MaxWeeklySets:        150,
		MaxWorkoutDays:       6,
		MinRecoveryHours:     24,
		DefaultRecoveryHours: 48,
		TrendWindowSessions:  5,

		ConsistencyBaselinePerWeek: 4,
		MinConsistencyScore:        70,
		MinWorkoutMinutes:          30,
		MinVarietyScore:            50,
		ProgressionRate:            0.05,
		GreatProgressRate:          0.10,

		MaxExerciseRecommendations: 5,
		MaxRestRecommendations:     4,
		MaxLoadPredictions:         4,
		MaxTips:                    4,
	}
}
