package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		expiry int
		none   bool
		want   RetentionClass
	}{
		{name: "no_expiry", none: true, want: Retained},
		{name: "expired", expiry: -1, want: Churned},
		{name: "in_ten_days", expiry: 10, want: AtRisk},
		{name: "exactly_thirty_days", expiry: AtRiskDays, want: AtRisk},
		{name: "in_forty_days", expiry: 40, want: Retained},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Customer{}
			if !tc.none {
				c.Expiry = daysFromNow(tc.expiry)
			}
			assert.Equal(t, tc.want, Classify(c, testNow))
		})
	}
}

func TestClassifyRetentionIsPartition(t *testing.T) {
	customers := []Customer{
		{},
		{Expiry: daysFromNow(-90)},
		{Expiry: daysFromNow(-1)},
		{Expiry: daysFromNow(0)},
		{Expiry: daysFromNow(29)},
		{Expiry: daysFromNow(31)},
		{Expiry: daysFromNow(365)},
	}

	b := ClassifyRetention(customers, testNow)

	assert.Equal(t, len(customers), b.Total())
	assert.Equal(t, RetentionBuckets{Retained: 3, AtRisk: 2, Churned: 2}, b)
	assert.Equal(t, RetentionBuckets{}, ClassifyRetention(nil, testNow))
}
