package domain

import (
	"context"
	"errors"
)

type CreatePlanRequest struct {
	Name             string   `json:"name"`
	Price            float64  `json:"price"`
	Cost             *float64 `json:"cost"`
	Speed            string   `json:"speed"`
	Data             string   `json:"data"`
	Support          string   `json:"support"`
	BillingCycleDays *int     `json:"billingCycleDays"`
}

type UpdatePlanRequest struct {
	ID               string   `json:"-"`
	Name             *string  `json:"name"`
	Price            *float64 `json:"price"`
	Cost             *float64 `json:"cost"`
	Speed            *string  `json:"speed"`
	Data             *string  `json:"data"`
	Support          *string  `json:"support"`
	BillingCycleDays *int     `json:"billingCycleDays"`
}

type GetPlanRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreatePlanRequest) (Plan, error)
	List(context.Context) ([]Plan, error)
	GetByID(context.Context, GetPlanRequest) (Plan, error)
	Update(context.Context, UpdatePlanRequest) (Plan, error)
	Delete(context.Context, GetPlanRequest) error
}

var (
	ErrInvalidShop  = errors.New("invalid_shop")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidCost  = errors.New("invalid_cost")
	ErrInvalidCycle = errors.New("invalid_billing_cycle")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
