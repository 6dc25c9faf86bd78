package workouts

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Lenient is a number that also accepts the loose shapes mobile clients
// send: numeric strings, decimal commas ("12,5"), trailing units ("45 min",
// "80kg", "90s") and null.
type Lenient struct {
	Value float64
	Valid bool
}

func NewLenient(v float64) Lenient {
	return Lenient{Value: v, Valid: true}
}

func (l *Lenient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Lenient{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*l = Lenient{}
			return nil
		}
		v, ok := ParseLenient(s)
		*l = Lenient{Value: v, Valid: ok}
		return nil
	}

	// bools, objects, arrays and out of range numbers read as missing
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*l = Lenient{}
		return nil
	}
	*l = NewLenient(f)
	return nil
}

func (l Lenient) MarshalJSON() ([]byte, error) {
	if !l.Valid || math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

// Or returns the value, or def when it was missing or unparseable.
func (l Lenient) Or(def float64) float64 {
	if !l.Valid {
		return def
	}
	return l.Value
}

// ParseLenient reads the leading number of s. It reports false when s holds
// no number at all.
func ParseLenient(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == '-' || r == '+')
	})
	if end >= 0 {
		s = s[:end]
	}
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
