package domain

import (
	"context"
	"errors"
)

const DefaultRecentLimit = 10

type RecordActivityRequest struct {
	Title string
	Icon  string
	Kind  string
}

type Service interface {
	Record(context.Context, RecordActivityRequest) (Activity, error)
	// Recent returns the newest entries first. A limit <= 0 uses the
	// configured default.
	Recent(ctx context.Context, limit int) ([]Activity, error)
}

var (
	ErrInvalidShop  = errors.New("invalid_shop")
	ErrInvalidTitle = errors.New("invalid_title")
)
