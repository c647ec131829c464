package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "customers"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Customer is a subscriber of a shop. Plan holds the plan name, not an id:
// it is joined to Plan.Name by string equality.
type Customer struct {
	ID                string     `gorm:"primaryKey;size:64" json:"id"`
	ShopID            string     `gorm:"not null;index;size:64" json:"shopId"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `json:"email"`
	Plan              string     `gorm:"index" json:"plan"`
	Status            string     `json:"status"`
	LastPaymentAmount float64    `json:"lastPaymentAmount"`
	Expiry            *time.Time `json:"expiry,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

func (Customer) TableName() string { return CollectionName }

func (c Customer) DocumentID() string { return c.ID }

func (c Customer) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", c.ShopID).
		Put("name", c.Name).
		Put("email", c.Email).
		Put("plan", c.Plan).
		Put("status", c.Status).
		Put("lastPaymentAmount", c.LastPaymentAmount).
		Put("expiry", c.Expiry).
		Put("createdAt", c.CreatedAt).
		Put("updatedAt", c.UpdatedAt)
}

// FromFields decodes a stored document. Unknown or malformed values fall back
// to their zero value and the record is always kept.
func FromFields(id string, f docstore.Fields) Customer {
	return Customer{
		ID:                id,
		ShopID:            f.String("shopId"),
		Name:              f.String("name"),
		Email:             f.String("email"),
		Plan:              f.String("plan"),
		Status:            f.String("status"),
		LastPaymentAmount: f.Float("lastPaymentAmount"),
		Expiry:            f.Time("expiry"),
		CreatedAt:         f.Time("createdAt"),
		UpdatedAt:         f.Time("updatedAt"),
	}
}

// Repository is the customers collection of the configured backend.
type Repository = docstore.Collection[Customer]
