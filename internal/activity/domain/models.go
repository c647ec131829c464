package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "activity"

const DefaultIcon = "fas fa-info-circle"

const (
	KindCustomer = "customer"
	KindPlan     = "plan"
	KindPayment  = "payment"
	KindTicket   = "ticket"
	KindCampaign = "campaign"
	KindSettings = "settings"
)

// Activity is one entry of the shop's recent activity feed.
type Activity struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	ShopID    string     `gorm:"not null;index;size:64" json:"shopId"`
	Title     string     `gorm:"not null" json:"title"`
	Icon      string     `json:"icon"`
	Kind      string     `gorm:"index" json:"kind"`
	CreatedAt *time.Time `gorm:"index" json:"createdAt,omitempty"`
}

func (Activity) TableName() string { return CollectionName }

func (a Activity) DocumentID() string { return a.ID }

func (a Activity) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", a.ShopID).
		Put("title", a.Title).
		Put("icon", a.Icon).
		Put("kind", a.Kind).
		Put("createdAt", a.CreatedAt)
}

func FromFields(id string, f docstore.Fields) Activity {
	icon := f.String("icon")
	if icon == "" {
		icon = DefaultIcon
	}
	return Activity{
		ID:        id,
		ShopID:    f.String("shopId"),
		Title:     f.String("title"),
		Icon:      icon,
		Kind:      f.String("kind"),
		CreatedAt: f.Time("createdAt"),
	}
}

type Repository = docstore.Collection[Activity]
