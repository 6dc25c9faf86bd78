package config

import (
	"errors"

	"github.com/2beens/gyminsights/internal/insights"
)

// ThresholdsConfig overrides selected engine thresholds. Unset keys keep
// the engine defaults.
type ThresholdsConfig struct {
	UnderworkedRatio      *float64 `toml:"underworked_ratio"`
	MinPredictionSessions *int     `toml:"min_prediction_sessions"`
	AggressiveRate        *float64 `toml:"aggressive_rate"`
	LinearRate            *float64 `toml:"linear_rate"`
	RestToleranceSeconds  *float64 `toml:"rest_tolerance_seconds"`
	HeavyWeightKg         *float64 `toml:"heavy_weight_kg"`
	ModerateWeightKg      *float64 `toml:"moderate_weight_kg"`
	MaxWeeklySets         *int     `toml:"max_weekly_sets"`
	MaxWorkoutDays        *int     `toml:"max_workout_days"`
	MinRecoveryHours      *float64 `toml:"min_recovery_hours"`
	MinWorkoutMinutes     *float64 `toml:"min_workout_minutes"`
	WarmupKeywords        []string `toml:"warmup_keywords"`
}

func (tc ThresholdsConfig) Validate() error {
	if tc.UnderworkedRatio != nil && (*tc.UnderworkedRatio <= 0 || *tc.UnderworkedRatio > 1) {
		return errors.New("thresholds: underworked_ratio must be in (0, 1]")
	}
	if tc.MinPredictionSessions != nil && *tc.MinPredictionSessions < 2 {
		return errors.New("thresholds: min_prediction_sessions must be at least 2")
	}
	if tc.AggressiveRate != nil && tc.LinearRate != nil && *tc.AggressiveRate < *tc.LinearRate {
		return errors.New("thresholds: aggressive_rate must not be below linear_rate")
	}
	if tc.HeavyWeightKg != nil && tc.ModerateWeightKg != nil && *tc.HeavyWeightKg < *tc.ModerateWeightKg {
		return errors.New("thresholds: heavy_weight_kg must not be below moderate_weight_kg")
	}
	return nil
}

// Apply returns base with the configured overrides set.
func (tc ThresholdsConfig) Apply(base insights.Thresholds) insights.Thresholds {
	setFloat(&base.UnderworkedRatio, tc.UnderworkedRatio)
	setInt(&base.MinPredictionSessions, tc.MinPredictionSessions)
	setFloat(&base.AggressiveRate, tc.AggressiveRate)
	setFloat(&base.LinearRate, tc.LinearRate)
	setFloat(&base.RestToleranceSeconds, tc.RestToleranceSeconds)
	setFloat(&base.HeavyWeightKg, tc.HeavyWeightKg)
	setFloat(&base.ModerateWeightKg, tc.ModerateWeightKg)
	setInt(&base.MaxWeeklySets, tc.MaxWeeklySets)
	setInt(&base.MaxWorkoutDays, tc.MaxWorkoutDays)
	setFloat(&base.MinRecoveryHours, tc.MinRecoveryHours)
	setFloat(&base.MinWorkoutMinutes, tc.MinWorkoutMinutes)
	if len(tc.WarmupKeywords) > 0 {
		base.WarmupKeywords = append([]string(nil), tc.WarmupKeywords...)
	}
	return base
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
