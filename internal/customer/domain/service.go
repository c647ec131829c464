package domain

import (
	"context"
	"errors"
	"time"
)

type CreateCustomerRequest struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Plan              string     `json:"plan"`
	Status            string     `json:"status"`
	LastPaymentAmount float64    `json:"lastPaymentAmount"`
	Expiry            *time.Time `json:"expiry"`
}

// UpdateCustomerRequest merges the non-nil fields into the stored record.
type UpdateCustomerRequest struct {
	ID                string     `json:"-"`
	Name              *string    `json:"name"`
	Email             *string    `json:"email"`
	Plan              *string    `json:"plan"`
	Status            *string    `json:"status"`
	LastPaymentAmount *float64   `json:"lastPaymentAmount"`
	Expiry            *time.Time `json:"expiry"`
	ClearExpiry       bool       `json:"clearExpiry"`
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context) ([]Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	Delete(context.Context, GetCustomerRequest) error
}

var (
	ErrInvalidShop   = errors.New("invalid_shop")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
