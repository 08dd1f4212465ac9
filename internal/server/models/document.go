package models

import "time"

// Document belongs to an account and an item and references exactly one
// blob in object storage via StorageKey. A document row must never exist
// without its blob; the document service preserves that under create,
// replace, and delete.
type Document struct {
	ID              int64
	AccountID       int64
	ItemID          int64
	Name            string
	RenewalRequired bool
	StorageKey      string
	CreatedAt       time.Time
}
