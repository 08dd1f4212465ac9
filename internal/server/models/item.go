package models

import "time"

// Item belongs to exactly one account and one header. HeaderName is a
// denormalized copy of the parent header's name kept for display; header
// rename is not exposed, so it cannot go stale.
type Item struct {
	ID         int64
	AccountID  int64
	HeaderID   int64
	HeaderName string
	Title      string
	ShortDesc  string
	LongDesc   string
	Highlights string
	CreatedAt  time.Time
}
