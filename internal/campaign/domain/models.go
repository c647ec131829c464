package domain

import (
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"gorm.io/datatypes"
)

const CollectionName = "campaigns"

const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Campaign is a queued outbound message. Delivery happens outside ispdesk.
type Campaign struct {
	ID         string            `gorm:"primaryKey;size:64" json:"id"`
	ShopID     string            `gorm:"not null;index;size:64" json:"shopId"`
	Channel    string            `gorm:"index" json:"channel"`
	Payload    datatypes.JSONMap `json:"payload"`
	Recipients []string          `gorm:"serializer:json;type:text" json:"recipients"`
	Count      int               `json:"count"`
	CreatedAt  *time.Time        `gorm:"index" json:"createdAt,omitempty"`
}

func (Campaign) TableName() string { return CollectionName }

func (c Campaign) DocumentID() string { return c.ID }

func (c Campaign) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", c.ShopID).
		Put("channel", c.Channel).
		Put("payload", map[string]any(c.Payload)).
		Put("recipients", c.Recipients).
		Put("count", c.Count).
		Put("createdAt", c.CreatedAt)
}

// FromFields decodes a stored campaign. Older documents keep recipients
// inside the payload and carry no count.
func FromFields(id string, f docstore.Fields) Campaign {
	c := Campaign{
		ID:         id,
		ShopID:     f.String("shopId"),
		Channel:    f.String("channel"),
		Recipients: f.Strings("recipients"),
		Count:      f.Int("count"),
		CreatedAt:  f.Time("createdAt"),
	}
	if m := f.Map("payload"); m != nil {
		c.Payload = datatypes.JSONMap(m)
		if c.Recipients == nil {
			c.Recipients = docstore.Fields(m).Strings("recipients")
		}
	}
	if !f.Has("count") {
		c.Count = MessageCount(c.Recipients)
	}
	return c
}

// MessageCount is the number of messages a campaign represents: one per
// recipient, or a single broadcast when no recipients are listed.
func MessageCount(recipients []string) int {
	if len(recipients) == 0 {
		return 1
	}
	return len(recipients)
}

type Repository = docstore.Collection[Campaign]
