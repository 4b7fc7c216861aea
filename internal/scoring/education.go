package scoring

import "strings"

// educationRank maps education levels to ordinal ranks for comparison.
// The domain data carries Spanish labels; English synonyms resolve to the
// same rank so criteria written either way compare correctly.
var educationRank = map[string]int{
	"secundaria":   1,
	"secondary":    1,
	"preparatoria": 2,
	"high school":  2,
	"técnica":      3,
	"tecnica":      3,
	"technical":    3,
	"licenciatura": 4,
	"bachelor's":   4,
	"bachelors":    4,
	"maestría":     5,
	"maestria":     5,
	"master's":     5,
	"masters":      5,
	"doctorado":    6,
	"doctorate":    6,
	"phd":          6,
}

// levelRank resolves an education level label to its ordinal rank.
// Unknown labels report ok=false and never satisfy a requirement.
func levelRank(level string) (int, bool) {
	rank, ok := educationRank[strings.ToLower(strings.TrimSpace(level))]
	return rank, ok
}
