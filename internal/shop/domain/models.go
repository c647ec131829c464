// Package domain contains the shop, the tenant that owns every other record.
package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "shops"

type Shop struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Slug      string     `gorm:"not null;uniqueIndex:ux_shops_slug;size:191" json:"slug"`
	OwnerUID  string     `gorm:"index;size:128" json:"ownerUid"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// TableName sets the database table name.
func (Shop) TableName() string { return CollectionName }

func (s Shop) DocumentID() string { return s.ID }

func (s Shop) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("name", s.Name).
		Put("slug", s.Slug).
		Put("ownerUid", s.OwnerUID).
		Put("createdAt", s.CreatedAt)
}

func FromFields(id string, f docstore.Fields) Shop {
	return Shop{
		ID:        id,
		Name:      f.String("name"),
		Slug:      f.String("slug"),
		OwnerUID:  f.String("ownerUid"),
		CreatedAt: f.Time("createdAt"),
	}
}

type Repository = docstore.Collection[Shop]
