package domain

import (
	"testing"
	"time"

	"github.com/smallbiznis/ispdesk/pkg/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFieldsToleratesLooseValues(t *testing.T) {
	c := FromFields("c1", docstore.Fields{
		"name":              "Asha",
		"plan":              "Fiber 100",
		"lastPaymentAmount": "not a number",
		"expiry":            "2025-04-01",
		"createdAt":         "yesterday",
	})

	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "Asha", c.Name)
	assert.Zero(t, c.LastPaymentAmount)
	require.NotNil(t, c.Expiry)
	assert.Equal(t, 2025, c.Expiry.Year())
	assert.Nil(t, c.CreatedAt)
}

func TestFieldsOmitsAbsentTimes(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fields := Customer{ID: "c1", ShopID: "s1", Name: "A", CreatedAt: &now}.Fields()

	assert.False(t, fields.Has("expiry"))
	assert.Equal(t, now, fields["createdAt"])
	assert.Equal(t, "s1", fields["shopId"])
}
