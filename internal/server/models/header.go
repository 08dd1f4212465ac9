package models

import "time"

// Header groups items under an account. Its name is unique (case-sensitive)
// per account.
type Header struct {
	ID        int64
	AccountID int64
	Name      string
	CreatedAt time.Time
}
