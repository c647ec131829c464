package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "tickets"

const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"

	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

type Ticket struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	ShopID        string     `gorm:"not null;index;size:64" json:"shopId"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	Subject       string     `json:"subject"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Status        string     `gorm:"index" json:"status"`
	AssignedTo    string     `json:"assignedTo"`
	CreatedAt     *time.Time `gorm:"index" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func (Ticket) TableName() string { return CollectionName }

func (t Ticket) DocumentID() string { return t.ID }

func (t Ticket) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", t.ShopID).
		Put("customerName", t.CustomerName).
		Put("customerEmail", t.CustomerEmail).
		Put("subject", t.Subject).
		Put("description", t.Description).
		Put("priority", t.Priority).
		Put("status", t.Status).
		Put("assignedTo", t.AssignedTo).
		Put("createdAt", t.CreatedAt).
		Put("updatedAt", t.UpdatedAt)
}

func FromFields(id string, f docstore.Fields) Ticket {
	return Ticket{
		ID:            id,
		ShopID:        f.String("shopId"),
		CustomerName:  f.String("customerName"),
		CustomerEmail: f.String("customerEmail"),
		Subject:       f.String("subject"),
		Description:   f.String("description"),
		Priority:      f.String("priority"),
		Status:        f.String("status"),
		AssignedTo:    f.String("assignedTo"),
		CreatedAt:     f.Time("createdAt"),
		UpdatedAt:     f.Time("updatedAt"),
	}
}

type Repository = docstore.Collection[Ticket]
