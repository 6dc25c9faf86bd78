package workouts

import (
	"math"
	"strings"
	"time"

	"github.com/2beens/gyminsights/internal/insights"

	log "github.com/sirupsen/logrus"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Coerce converts raw sessions into engine records. Missing or malformed
// numbers become 0 and negatives are clamped to 0. A session whose date
// cannot be parsed is dropped, and the number of dropped sessions returned.
func Coerce(raw []RawWorkout) (_ []insights.WorkoutRecord, dropped int) {
	records := make([]insights.WorkoutRecord, 0, len(raw))
	for _, rw := range raw {
		rec, ok := CoerceOne(rw)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func CoerceOne(rw RawWorkout) (insights.WorkoutRecord, bool) {
	date, ok := parseDate(rw.Date)
	if !ok {
		log.Debugf("coerce: dropping workout [%s], bad date [%s]", rw.ID, rw.Date)
		return insights.WorkoutRecord{}, false
	}

	rec := insights.WorkoutRecord{
		ID:              rw.ID,
		Date:            date,
		DurationMinutes: int(math.Round(nonNegative(rw.DurationMinutes.Or(rw.Duration.Or(0))))),
		Exercises:       make([]insights.ExerciseEntry, 0, len(rw.Exercises)),
		Notes:           rw.Notes,
	}

	for _, re := range rw.Exercises {
		entry := insights.ExerciseEntry{
			Name: strings.TrimSpace(re.Name),
			Sets: make([]insights.SetEntry, 0, len(re.Sets)),
		}
		for _, rs := range re.Sets {
			set := insights.SetEntry{
				Reps:   int(nonNegative(rs.Reps.Or(0))),
				Weight: nonNegative(rs.Weight.Or(0)),
			}
			if rest, ok := restSeconds(rs); ok {
				set.RestSeconds = &rest
			}
			entry.Sets = append(entry.Sets, set)
		}
		rec.Exercises = append(rec.Exercises, entry)
	}

	return rec, true
}

// restSeconds prefers restSeconds over the older restTime field.
func restSeconds(rs RawSet) (float64, bool) {
	for _, l := range []*Lenient{rs.RestSeconds, rs.RestTime} {
		if l != nil && l.Valid {
			return nonNegative(l.Value), true
		}
	}
	return 0, false
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
