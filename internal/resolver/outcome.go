package resolver

import "complaintfinder/internal/models"

// Outcome is the result of resolving one keyword. It is exactly one of
// NoResult, MappingHit or FallbackResult.
type Outcome interface {
	// Kind returns the models.Outcome* constant for the variant.
	Kind() string
	// TotalResults returns the number of records the outcome accounts for.
	TotalResults() int
	outcome()
}

// NoResult means no record matched the keyword.
type NoResult struct {
	Keyword string
}

// MappingHit means the keyword is mapped and the mapped category has records.
type MappingHit struct {
	Keyword  string
	Category string
	Count    int
}

// FallbackResult carries the category distribution of a substring search.
type FallbackResult struct {
	Keyword      string
	Distribution Distribution
}

func (NoResult) Kind() string       { return models.OutcomeNoResult }
func (MappingHit) Kind() string     { return models.OutcomeMapping }
func (FallbackResult) Kind() string { return models.OutcomeFallback }

func (NoResult) TotalResults() int         { return 0 }
func (m MappingHit) TotalResults() int     { return m.Count }
func (f FallbackResult) TotalResults() int { return f.Distribution.Sum() }

func (NoResult) outcome()       {}
func (MappingHit) outcome()     {}
func (FallbackResult) outcome() {}

// Distribution returns the single-entry distribution of a mapping hit.
func (m MappingHit) Distribution() Distribution {
	return Distribution{{Category: m.Category, Count: m.Count}}
}

// Recommended returns the highest-count category of the fallback search.
func (f FallbackResult) Recommended() CategoryCount {
	top, _ := f.Distribution.Top()
	return top
}
