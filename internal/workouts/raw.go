package workouts

// RawWorkout is a session as submitted by clients, before coercion.
type RawWorkout struct {
	ID   string `json:"id,omitempty"`
	Date string `json:"date"`
	// DurationMinutes wins over Duration when both are sent.
	DurationMinutes Lenient       `json:"durationMinutes"`
	Duration        Lenient       `json:"duration"`
	Exercises       []RawExercise `json:"exercises"`
	Notes           string        `json:"notes,omitempty"`
	SavedAt         string        `json:"savedAt,omitempty"`
}

type RawExercise struct {
	Name string   `json:"name"`
	Sets []RawSet `json:"sets"`
}

type RawSet struct {
	Reps        Lenient  `json:"reps"`
	Weight      Lenient  `json:"weight"`
	RestSeconds *Lenient `json:"restSeconds,omitempty"`
	RestTime    *Lenient `json:"restTime,omitempty"`
}
