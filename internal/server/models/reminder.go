package models

import "time"

// Lead is the alert-lead enum: how far before the target date a reminder
// enters its alert window.
type Lead int

const (
	LeadOneDay   Lead = 1
	LeadOneWeek  Lead = 2
	Lead15Days   Lead = 3
	LeadOneMonth Lead = 4
)

// Valid reports whether the lead value is one of the defined enum members.
func (l Lead) Valid() bool {
	return l >= LeadOneDay && l <= LeadOneMonth
}

// WindowStart returns the moment the alert window opens for the given
// target date. The month lead uses calendar-month subtraction, not 30 days.
func (l Lead) WindowStart(target time.Time) time.Time {
	switch l {
	case LeadOneDay:
		return target.AddDate(0, 0, -1)
	case LeadOneWeek:
		return target.AddDate(0, 0, -7)
	case Lead15Days:
		return target.AddDate(0, 0, -15)
	case LeadOneMonth:
		return target.AddDate(0, -1, 0)
	default:
		return target
	}
}

// Reminder belongs to an account and an item. Evaluation is stateless:
// there is no delivered/acknowledged flag.
type Reminder struct {
	ID         int64
	AccountID  int64
	ItemID     int64
	Name       string
	TargetDate time.Time
	Before     Lead
	CreatedAt  time.Time
}

// Due reports whether the reminder has entered its alert window as of now.
func (r *Reminder) Due(now time.Time) bool {
	return !now.Before(r.Before.WindowStart(r.TargetDate))
}
