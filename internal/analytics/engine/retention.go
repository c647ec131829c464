package engine

import "time"

type RetentionClass string

const (
	Retained RetentionClass = "retained"
	AtRisk   RetentionClass = "atRisk"
	Churned  RetentionClass = "churned"
)

// RetentionBuckets partitions customers: the three counts always sum to the
// number of customers classified.
type RetentionBuckets struct {
	Retained int `json:"retained"`
	AtRisk   int `json:"atRisk"`
	Churned  int `json:"churned"`
}

func (b RetentionBuckets) Total() int {
	return b.Retained + b.AtRisk + b.Churned
}

// Classify places one customer by expiry alone.
func Classify(c Customer, now time.Time) RetentionClass {
	if c.Expiry == nil {
		return Retained
	}
	if c.Expiry.Before(now) {
		return Churned
	}
	if !c.Expiry.After(now.AddDate(0, 0, AtRiskDays)) {
		return AtRisk
	}
	return Retained
}

func ClassifyRetention(customers []Customer, now time.Time) RetentionBuckets {
	var b RetentionBuckets
	for _, c := range customers {
		switch Classify(c, now) {
		case Churned:
			b.Churned++
		case AtRisk:
			b.AtRisk++
		default:
			b.Retained++
		}
	}
	return b
}
