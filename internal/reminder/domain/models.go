package domain

import (
	"strings"
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "reminders"

const (
	ChannelAll = "all"

	TypePlanExpiry = "plan-expiry-10d"
)

// Reminder is a scheduled notice for a customer. Sending is out of scope.
type Reminder struct {
	ID           string     `gorm:"primaryKey;size:255" json:"id"`
	ShopID       string     `gorm:"not null;index;size:64" json:"shopId"`
	CustomerID   string     `gorm:"index;size:64" json:"customerId"`
	Name         string     `json:"name"`
	Channel      string     `json:"channel"`
	Type         string     `json:"type"`
	ScheduledFor *time.Time `gorm:"index" json:"scheduledFor,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

func (Reminder) TableName() string { return CollectionName }

func (r Reminder) DocumentID() string { return r.ID }

func (r Reminder) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", r.ShopID).
		Put("customerId", r.CustomerID).
		Put("name", r.Name).
		Put("channel", r.Channel).
		Put("type", r.Type).
		Put("scheduledFor", r.ScheduledFor).
		Put("createdAt", r.CreatedAt)
}

func FromFields(id string, f docstore.Fields) Reminder {
	return Reminder{
		ID:           id,
		ShopID:       f.String("shopId"),
		CustomerID:   f.String("customerId"),
		Name:         f.String("name"),
		Channel:      f.String("channel"),
		Type:         f.String("type"),
		ScheduledFor: f.Time("scheduledFor"),
		CreatedAt:    f.Time("createdAt"),
	}
}

// KeyFor is the reminder id for one customer, type and calendar day. Writing
// the same key twice is how scheduling stays idempotent.
func KeyFor(shopID, customerID, kind string, day time.Time) string {
	return strings.Join([]string{shopID, customerID, kind, day.Format("2006-01-02")}, ":")
}

type Repository = docstore.Collection[Reminder]
