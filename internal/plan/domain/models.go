package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "plans"

// DefaultBillingCycleDays applies when a plan has no cycle of its own.
const DefaultBillingCycleDays = 30

// Plan is a sellable subscription. Name is the join key used by
// Customer.Plan.
type Plan struct {
	ID               string     `gorm:"primaryKey;size:64" json:"id"`
	ShopID           string     `gorm:"not null;index;size:64" json:"shopId"`
	Name             string     `gorm:"not null;index" json:"name"`
	Price            float64    `json:"price"`
	Cost             *float64   `json:"cost,omitempty"`
	Speed            string     `json:"speed"`
	Data             string     `json:"data"`
	Support          string     `json:"support"`
	BillingCycleDays *int       `json:"billingCycleDays,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

func (Plan) TableName() string { return CollectionName }

func (p Plan) DocumentID() string { return p.ID }

func (p Plan) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", p.ShopID).
		Put("name", p.Name).
		Put("price", p.Price).
		Put("cost", p.Cost).
		Put("speed", p.Speed).
		Put("data", p.Data).
		Put("support", p.Support).
		Put("billingCycleDays", p.BillingCycleDays).
		Put("createdAt", p.CreatedAt).
		Put("updatedAt", p.UpdatedAt)
}

// FromFields decodes a stored plan. An unparsable billingCycleDays is kept as
// docstore.InvalidInt so the resolver can report an unknown due date.
func FromFields(id string, f docstore.Fields) Plan {
	return Plan{
		ID:               id,
		ShopID:           f.String("shopId"),
		Name:             f.String("name"),
		Price:            f.Float("price"),
		Cost:             f.OptionalFloat("cost"),
		Speed:            f.String("speed"),
		Data:             f.String("data"),
		Support:          f.String("support"),
		BillingCycleDays: f.OptionalInt("billingCycleDays"),
		CreatedAt:        f.Time("createdAt"),
		UpdatedAt:        f.Time("updatedAt"),
	}
}

type Repository = docstore.Collection[Plan]
