package domain

import (
	"context"
	"errors"
)

type QueueCampaignRequest struct {
	Channel    string         `json:"channel"`
	Recipients []string       `json:"recipients"`
	Payload    map[string]any `json:"payload"`
}

type Service interface {
	Queue(context.Context, QueueCampaignRequest) (Campaign, error)
	// List returns the shop's campaigns, newest first.
	List(context.Context) ([]Campaign, error)
}

var (
	ErrInvalidShop    = errors.New("invalid_shop")
	ErrInvalidChannel = errors.New("invalid_channel")
)
