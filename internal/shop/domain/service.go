package domain

import (
	"context"
	"errors"
)

type CreateShopRequest struct {
	Name     string `json:"name"`
	OwnerUID string `json:"ownerUid"`
}

type Service interface {
	Create(context.Context, CreateShopRequest) (Shop, error)
	GetByID(ctx context.Context, id string) (Shop, error)
	// List returns every shop. Background jobs use it to fan out per tenant.
	List(context.Context) ([]Shop, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
