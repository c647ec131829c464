package domain

import (
	"strings"
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

const CollectionName = "settings"

// DocumentKey is the per-shop settings document name.
const DocumentKey = "app"

const DefaultCurrency = "INR"

// Settings are the shop-wide display preferences. They are passed
// explicitly to every formatter.
type Settings struct {
	ID           string     `gorm:"primaryKey;size:128" json:"-"`
	ShopID       string     `gorm:"not null;uniqueIndex;size:64" json:"shopId"`
	Currency     string     `json:"currency"`
	CompanyName  string     `json:"companyName"`
	SupportEmail string     `json:"supportEmail"`
	SupportPhone string     `json:"supportPhone"`
	Address      string     `json:"address"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func (Settings) TableName() string { return CollectionName }

func (s Settings) DocumentID() string { return s.ID }

func (s Settings) Fields() docstore.Fields {
	return docstore.Fields{}.
		Put("shopId", s.ShopID).
		Put("currency", s.Currency).
		Put("companyName", s.CompanyName).
		Put("supportEmail", s.SupportEmail).
		Put("supportPhone", s.SupportPhone).
		Put("address", s.Address).
		Put("updatedAt", s.UpdatedAt)
}

func FromFields(id string, f docstore.Fields) Settings {
	return Settings{
		ID:           id,
		ShopID:       f.String("shopId"),
		Currency:     f.String("currency"),
		CompanyName:  f.String("companyName"),
		SupportEmail: f.String("supportEmail"),
		SupportPhone: f.String("supportPhone"),
		Address:      f.String("address"),
		UpdatedAt:    f.Time("updatedAt"),
	}
}

// Defaults returns the settings used before a shop saves its own.
func Defaults(shopID string) Settings {
	return Settings{
		ID:       DocumentIDFor(shopID),
		ShopID:   shopID,
		Currency: DefaultCurrency,
	}
}

// WithDefaults fills blank fields from Defaults.
func (s Settings) WithDefaults() Settings {
	if strings.TrimSpace(s.Currency) == "" {
		s.Currency = DefaultCurrency
	}
	return s
}

func DocumentIDFor(shopID string) string {
	return shopID + ":" + DocumentKey
}

type Repository = docstore.Collection[Settings]
