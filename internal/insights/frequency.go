package insights

import (
	"sort"
	"time"
)

// MuscleGroupFrequency counts exercise occurrences per muscle group.
type MuscleGroupFrequency map[MuscleGroup]int

func (f MuscleGroupFrequency) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// MuscleGroupFrequency counts each exercise once per occurrence (not per set)
// for every muscle group it is tagged with. Unknown exercises are ignored.
func (e *Engine) MuscleGroupFrequency(history []WorkoutRecord) MuscleGroupFrequency {
	freq := make(MuscleGroupFrequency, len(AllMuscleGroups))
	for _, w := range history {
		for _, ex := range w.Exercises {
			entry, ok := e.catalog.Lookup(ex.Name)
			if !ok {
				continue
			}
			for _, g := range entry.MuscleGroups {
				if g.Valid() {
					freq[g]++
				}
			}
		}
	}
	return freq
}

// UnderworkedMuscles returns, in enum order, the groups whose count is below
// ratio times the per-group average. Zero total flags nothing.
func UnderworkedMuscles(freq MuscleGroupFrequency, ratio float64) []MuscleGroup {
	total := freq.Total()
	if total == 0 {
		return nil
	}
	avg := float64(total) / float64(len(AllMuscleGroups))

	var under []MuscleGroup
	for _, g := range AllMuscleGroups {
		if float64(freq[g]) < avg*ratio {
			under = append(under, g)
		}
	}
	return under
}

func recentExercises(history []WorkoutRecord, since time.Time) map[string]bool {
	recent := make(map[string]bool)
	for _, w := range sessionsSince(history, since) {
		for _, ex := range w.Exercises {
			recent[ex.Name] = true
		}
	}
	return recent
}

type exerciseCount struct {
	name      string
	count     int
	firstSeen int
}

// mostFrequentExercises ranks exercise names by raw occurrence count. Ties
// go to catalog order, then to first appearance for names not in the catalog.
func (e *Engine) mostFrequentExercises(history []WorkoutRecord) []string {
	counts := make(map[string]*exerciseCount)
	var ordered []*exerciseCount
	for _, w := range history {
		for _, ex := range w.Exercises {
			c, ok := counts[ex.Name]
			if !ok {
				c = &exerciseCount{name: ex.Name, firstSeen: len(ordered)}
				counts[ex.Name] = c
				ordered = append(ordered, c)
			}
			c.count++
		}
	}

	rank := func(c *exerciseCount) int {
		if pos, ok := e.catalog.Position(c.name); ok {
			return pos
		}
		return e.catalog.Len() + c.firstSeen
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return rank(ordered[i]) < rank(ordered[j])
	})

	names := make([]string, 0, len(ordered))
	for _, c := range ordered {
		names = append(names, c.name)
	}
	return names
}
