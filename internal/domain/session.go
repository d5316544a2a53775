package domain

import "time"

// SessionRecord is one unit of raw telemetry for a monitored session as
// reported by the upstream session source. Zero values mean "absent".
type SessionRecord struct {
	Key            string
	UpdatedAt      time.Time
	TotalTokens    int64
	ContextTokens  int64
	InputTokens    int64
	OutputTokens   int64
	Model          string
	AbortedLastRun *bool
	LastChannel    string
	CurrentTask    string
}
