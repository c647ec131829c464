package domain

import (
	"context"
	"errors"
)

// SaveSettingsRequest merges the provided fields into the stored settings.
type SaveSettingsRequest struct {
	Currency     *string `json:"currency"`
	CompanyName  *string `json:"companyName"`
	SupportEmail *string `json:"supportEmail"`
	SupportPhone *string `json:"supportPhone"`
	Address      *string `json:"address"`
}

type Service interface {
	Get(context.Context) (Settings, error)
	Save(context.Context, SaveSettingsRequest) (Settings, error)
}

var (
	ErrInvalidShop     = errors.New("invalid_shop")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidEmail    = errors.New("invalid_email")
)
