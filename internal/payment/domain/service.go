package domain

import (
	"context"
	"errors"
	"time"
)

// RecordPaymentRequest is a manual payment entry. Amount defaults to the plan
// price and DueDate to the plan's next due date when omitted.
type RecordPaymentRequest struct {
	CustomerID string     `json:"customerId"`
	PlanID     string     `json:"planId"`
	Amount     *float64   `json:"amount"`
	Method     string     `json:"method"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paidAt"`
	DueDate    *time.Time `json:"dueDate"`
}

type Service interface {
	Record(context.Context, RecordPaymentRequest) (Payment, error)
	// List returns the shop's payments, newest first.
	List(context.Context) ([]Payment, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidShop     = errors.New("invalid_shop")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidPlan     = errors.New("invalid_plan")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidMethod   = errors.New("invalid_method")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
