package domain

import (
	"context"
	"errors"
)

type CreateTicketRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	AssignedTo    string `json:"assignedTo"`
}

type UpdateTicketStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Service interface {
	Create(context.Context, CreateTicketRequest) (Ticket, error)
	// List returns the shop's tickets, newest first.
	List(context.Context) ([]Ticket, error)
	UpdateStatus(context.Context, UpdateTicketStatusRequest) (Ticket, error)
}

var (
	ErrInvalidShop     = errors.New("invalid_shop")
	ErrInvalidSubject  = errors.New("invalid_subject")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
