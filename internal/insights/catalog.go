package insights

const defaultOptimalRestSeconds = 120

type CatalogEntry struct {
	Name               string        `json:"name"`
	MuscleGroups       []MuscleGroup `json:"muscleGroups"`
	Category           string        `json:"category"`
	OptimalRestSeconds int           `json:"optimalRestSeconds"`
}

// Catalog is a read-only exercise lookup. Names are matched case-sensitively.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.index[e.Name]; ok {
			continue
		}
		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// DefaultCatalog returns the built-in catalog. Each entry is tagged with its
// primary muscle group only, so one exercise never counts toward two groups.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CatalogEntry{
		{Name: "Bench Press", MuscleGroups: []MuscleGroup{Chest}, Category: "Chest", OptimalRestSeconds: 180},
		{Name: "Squat", MuscleGroups: []MuscleGroup{Legs}, Category: "Legs", OptimalRestSeconds: 240},
		{Name: "Deadlift", MuscleGroups: []MuscleGroup{Back}, Category: "Back", OptimalRestSeconds: 300},
		{Name: "Bent-Over Row", MuscleGroups: []MuscleGroup{Back}, Category: "Back", OptimalRestSeconds: 180},
		{Name: "Overhead Press", MuscleGroups: []MuscleGroup{Shoulders}, Category: "Shoulders", OptimalRestSeconds: 180},
		{Name: "Barbell Curl", MuscleGroups: []MuscleGroup{Arms}, Category: "Arms", OptimalRestSeconds: 120},
		{Name: "Skull Crusher", MuscleGroups: []MuscleGroup{Arms}, Category: "Arms", OptimalRestSeconds: 120},
		{Name: "Leg Press", MuscleGroups: []MuscleGroup{Legs}, Category: "Legs", OptimalRestSeconds: 180},
		{Name: "Lat Pulldown", MuscleGroups: []MuscleGroup{Back}, Category: "Back", OptimalRestSeconds: 180},
		{Name: "Push-Up", MuscleGroups: []MuscleGroup{Chest}, Category: "Chest", OptimalRestSeconds: 120},
	})
}

func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	i, ok := c.index[name]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Position returns the entry's index in catalog order.
func (c *Catalog) Position(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// OptimalRest returns the catalog rest time. Entries without one get 120
// seconds; exercises missing from the catalog report false.
func (c *Catalog) OptimalRest(name string) (int, bool) {
	e, ok := c.Lookup(name)
	if !ok {
		return 0, false
	}
	if e.OptimalRestSeconds > 0 {
		return e.OptimalRestSeconds, true
	}
	return defaultOptimalRestSeconds, true
}

func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

var complementaryExercises = map[MuscleGroup][]string{
	Chest:     {"Incline Bench Press", "Chest Fly", "Dips", "Diamond Push-Up"},
	Back:      {"Front Pulldown", "T-Bar Row", "Pullover", "Face Pull"},
	Legs:      {"Lunge", "Stiff-Leg Deadlift", "Calf Raise", "Leg Extension"},
	Shoulders: {"Lateral Raise", "Front Raise", "Shrug", "Arnold Press"},
	Arms:      {"Hammer Curl", "French Press", "Concentration Curl", "Bench Dip"},
}

var groupCategories = map[MuscleGroup]string{
	Chest:     "Chest",
	Back:      "Back",
	Legs:      "Legs",
	Shoulders: "Shoulders",
	Arms:      "Arms",
}

// ComplementaryExercises lists the candidates suggested when a group is undertrained.
func ComplementaryExercises(g MuscleGroup) []string {
	return append([]string(nil), complementaryExercises[g]...)
}

func CategoryFor(g MuscleGroup) string {
	if c, ok := groupCategories[g]; ok {
		return c
	}
	return generalCategory
}

const generalCategory = "General"
