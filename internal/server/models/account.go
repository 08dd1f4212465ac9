// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account statuses. Disablement is a soft delete: rows are never removed.
const (
	AccountStatusDisabled = 0
	AccountStatusActive   = 1
)

// Account is a registered tenant. Every other entity is scoped to exactly
// one account.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Mobile       string
	Status       int
	CreatedAt    time.Time
}
