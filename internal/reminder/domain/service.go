package domain

import (
	"context"
	"errors"
	"time"
)

type ScheduleReminderRequest struct {
	CustomerID   string    `json:"customerId"`
	Name         string    `json:"name"`
	Channel      string    `json:"channel"`
	Type         string    `json:"type"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

type Service interface {
	// Schedule stores a reminder and reports whether it was new. A reminder
	// for the same customer, type and day is returned unchanged.
	Schedule(context.Context, ScheduleReminderRequest) (Reminder, bool, error)
	// List returns the shop's reminders, soonest first.
	List(context.Context) ([]Reminder, error)
}

var (
	ErrInvalidShop     = errors.New("invalid_shop")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidSchedule = errors.New("invalid_schedule")
)
