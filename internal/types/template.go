// Package types provides type definitions for structured data used throughout the interview template editor.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RowID identifies a question or keyword row. A row is either pending (created
// locally, never persisted) or persisted (carries the backend-assigned id).
type RowID struct {
	pending   uuid.UUID
	persisted string
}

// NewPendingID returns a fresh id for a row that exists only on the client.
func NewPendingID() RowID {
	return RowID{pending: uuid.New()}
}

// PersistedID wraps a backend-assigned id.
func PersistedID(id string) RowID {
	return RowID{persisted: id}
}

// IsPending reports whether the row has not been saved yet.
func (r RowID) IsPending() bool {
	return r.persisted == ""
}

// Persisted returns the backend id and true, or "" and false for pending rows.
func (r RowID) Persisted() (string, bool) {
	if r.IsPending() {
		return "", false
	}
	return r.persisted, true
}

// String renders the id for display and logs. Pending ids are prefixed so they
// are recognisable in output; nothing parses this form back.
func (r RowID) String() string {
	if r.IsPending() {
		return "pending:" + r.pending.String()
	}
	return r.persisted
}

// TimeLimit is a per-question answer time limit in seconds.
type TimeLimit int

// Allowed time limits offered to the user.
const (
	TimeLimit30s  TimeLimit = 30
	TimeLimit60s  TimeLimit = 60
	TimeLimit90s  TimeLimit = 90
	TimeLimit120s TimeLimit = 120
	TimeLimit180s TimeLimit = 180
	TimeLimit300s TimeLimit = 300

	// DefaultTimeLimit is used for newly added questions.
	DefaultTimeLimit = TimeLimit90s
)

// AllowedTimeLimits lists the selectable time limits in ascending order.
var AllowedTimeLimits = []TimeLimit{
	TimeLimit30s, TimeLimit60s, TimeLimit90s, TimeLimit120s, TimeLimit180s, TimeLimit300s,
}

// Valid reports whether t is one of AllowedTimeLimits.
func (t TimeLimit) Valid() bool {
	for _, allowed := range AllowedTimeLimits {
		if t == allowed {
			return true
		}
	}
	return false
}

// Label formats the time limit the way the form shows it.
func (t TimeLimit) Label() string {
	if t >= 60 && t%60 == 0 {
		return fmt.Sprintf("%d min", int(t)/60)
	}
	if t > 60 {
		return fmt.Sprintf("%d min %d sec", int(t)/60, int(t)%60)
	}
	return fmt.Sprintf("%d sec", int(t))
}

// ParseTimeLimit parses a number of seconds and checks it against AllowedTimeLimits.
func ParseTimeLimit(s string) (TimeLimit, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time limit %q: %w", s, err)
	}
	t := TimeLimit(n)
	if !t.Valid() {
		return 0, fmt.Errorf("time limit %ds is not one of %v", n, AllowedTimeLimits)
	}
	return t, nil
}

// Weight is the relative importance of a scoring keyword.
type Weight float64

// Allowed keyword weights.
const (
	WeightLow      Weight = 1
	WeightMedium   Weight = 2
	WeightHigh     Weight = 3
	WeightCritical Weight = 5

	// DefaultWeight is the weight a fresh keyword draft starts with.
	DefaultWeight = WeightLow
)

// AllowedWeights lists the selectable weights in ascending order.
var AllowedWeights = []Weight{WeightLow, WeightMedium, WeightHigh, WeightCritical}

// Valid reports whether w is one of AllowedWeights.
func (w Weight) Valid() bool {
	for _, allowed := range AllowedWeights {
		if w == allowed {
			return true
		}
	}
	return false
}

// Label formats the weight with its descriptive name.
func (w Weight) Label() string {
	switch w {
	case WeightLow:
		return "1 (low)"
	case WeightMedium:
		return "2 (medium)"
	case WeightHigh:
		return "3 (high)"
	case WeightCritical:
		return "5 (critical)"
	default:
		return strconv.FormatFloat(float64(w), 'g', -1, 64)
	}
}

// ParseWeight parses a numeric weight and checks it against AllowedWeights.
func ParseWeight(s string) (Weight, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q: %w", s, err)
	}
	w := Weight(f)
	if !w.Valid() {
		return 0, fmt.Errorf("weight %s is not one of %v", s, AllowedWeights)
	}
	return w, nil
}

// Category groups keywords for scoring.
type Category string

// Keyword categories.
const (
	CategoryTechnical  Category = "technical"
	CategorySoftSkills Category = "soft_skills"
	CategoryExperience Category = "experience"
	CategoryGeneral    Category = "general"

	// DefaultCategory is preselected for new keyword drafts.
	DefaultCategory = CategoryTechnical
)

// AllowedCategories lists the categories in the order the form offers them.
var AllowedCategories = []Category{CategoryTechnical, CategorySoftSkills, CategoryExperience, CategoryGeneral}

// Valid reports whether c is one of AllowedCategories.
func (c Category) Valid() bool {
	for _, allowed := range AllowedCategories {
		if c == allowed {
			return true
		}
	}
	return false
}

// Label returns a human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryTechnical:
		return "Technical Skills"
	case CategorySoftSkills:
		return "Soft Skills"
	case CategoryExperience:
		return "Experience"
	case CategoryGeneral:
		return "General"
	default:
		return string(c)
	}
}

// NormalizeCategory trims and lowercases a category name.
func NormalizeCategory(c Category) Category {
	return Category(strings.ToLower(strings.TrimSpace(string(c))))
}

// ParseCategory accepts a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := NormalizeCategory(Category(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (expected one of %v)", s, AllowedCategories)
	}
	return c, nil
}

// NormalizeKeyword trims and lowercases keyword text.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Question is one interview question in display order.
type Question struct {
	ID        RowID
	Text      string
	TimeLimit TimeLimit
	Order     int
}

// Keyword is one AI-scoring keyword.
type Keyword struct {
	ID       RowID
	Keyword  string
	Category Category
	Weight   Weight
}

// TemplateState is the editable content of one interview template.
type TemplateState struct {
	ID          string
	Title       string
	Description string
	Questions   []Question
	Keywords    []Keyword
}
