package models

import "time"

// Keyword lookup outcome constants
const (
	OutcomeMapping  = "mapping"
	OutcomeFallback = "fallback"
	OutcomeNoResult = "no_result"
	OutcomeError    = "error"
)

// KeywordLookup represents a per-keyword search count by outcome.
type KeywordLookup struct {
	Keyword    string    `json:"keyword"`
	Outcome    string    `json:"outcome"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
