package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "payments"

const (
	MethodCard = "Card"
	MethodCash = "Cash"
	MethodUPI  = "UPI"

	StatusPaid    = "Paid"
	StatusPending = "Pending"
	StatusFailed  = "Failed"
)

// Payment is a manually recorded payment of a customer.
type Payment struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	ShopID       string     `gorm:"not null;index;size:64" json:"shopId"`
	CustomerID   string     `gorm:"index;size:64" json:"customerId"`
	CustomerName string     `json:"customerName"`
	PlanID       string     `gorm:"size:64" json:"planId"`
	Amount       float64    `json:"amount"`
	Method       string     `json:"method"`
	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    *time.Time `gorm:"index" json:"createdAt,omitempty"`
}

func (Payment) TableName() string { return CollectionName }

func (p Payment) DocumentID() string { return p.ID }

func (p Payment) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", p.ShopID).
		Put("customerId", p.CustomerID).
		Put("customerName", p.CustomerName).
		Put("planId", p.PlanID).
		Put("amount", p.Amount).
		Put("method", p.Method).
		Put("status", p.Status).
		Put("paidAt", p.PaidAt).
		Put("dueDate", p.DueDate).
		Put("createdAt", p.CreatedAt)
}

// FromFields decodes a stored payment. A non-numeric amount counts as 0.
func FromFields(id string, f docstore.Fields) Payment {
	return Payment{
		ID:           id,
		ShopID:       f.String("shopId"),
		CustomerID:   f.String("customerId"),
		CustomerName: f.String("customerName"),
		PlanID:       f.String("planId"),
		Amount:       f.Float("amount"),
		Method:       f.String("method"),
		Status:       f.String("status"),
		PaidAt:       f.Time("paidAt"),
		DueDate:      f.Time("dueDate"),
		CreatedAt:    f.Time("createdAt"),
	}
}

type Repository = docstore.Collection[Payment]
