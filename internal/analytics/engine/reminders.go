package engine

import "time"

// DueForReminder returns the customers whose expiry falls on the calendar day
// leadDays after now, in now's location. A negative lead uses the default.
func DueForReminder(customers []Customer, now time.Time, leadDays int) []Customer {
	if leadDays < 0 {
		leadDays = DefaultReminderLeadDays
	}
	target := startOfDay(now).AddDate(0, 0, leadDays)
	var due []Customer
	for _, c := range customers {
		if c.Expiry == nil {
			continue
		}
		if sameDay(c.Expiry.In(now.Location()), target) {
			due = append(due, c)
		}
	}
	return due
}
