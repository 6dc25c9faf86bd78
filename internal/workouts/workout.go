package workouts

import (
	"time"

	"github.com/2beens/gyminsights/internal/insights"

	"github.com/google/uuid"
)

// Workout is a stored session owned by a user.
type Workout struct {
	ID              uuid.UUID                `json:"id"`
	UserID          string                   `json:"userId"`
	PerformedAt     time.Time                `json:"performedAt"`
	DurationMinutes int                      `json:"durationMinutes"`
	Exercises       []insights.ExerciseEntry `json:"exercises"`
	Notes           string                   `json:"notes"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// NewWorkout builds a storable workout from a coerced record. A record id
// that is not a UUID is replaced with a fresh one.
func NewWorkout(userID string, rec insights.WorkoutRecord, now time.Time) Workout {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		id = uuid.New()
	}
	exercises := rec.Exercises
	if exercises == nil {
		exercises = []insights.ExerciseEntry{}
	}
	return Workout{
		ID:              id,
		UserID:          userID,
		PerformedAt:     rec.Date,
		DurationMinutes: rec.DurationMinutes,
		Exercises:       exercises,
		Notes:           rec.Notes,
		CreatedAt:       now,
	}
}

func (w Workout) Record() insights.WorkoutRecord {
	return insights.WorkoutRecord{
		ID:              w.ID.String(),
		Date:            w.PerformedAt,
		DurationMinutes: w.DurationMinutes,
		Exercises:       w.Exercises,
		Notes:           w.Notes,
	}
}

func Records(list []Workout) []insights.WorkoutRecord {
	records := make([]insights.WorkoutRecord, 0, len(list))
	for _, w := range list {
		records = append(records, w.Record())
	}
	return records
}
