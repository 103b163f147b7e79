// Package rating derives a title's displayed rating from its review
// scores. The rating is always recomputed on read and never stored, so
// it can not go stale against created, edited or deleted reviews.
package rating

import (
	"math"
)

// Mean returns the arithmetic mean of the scores. ok is false when the
// set is empty: a title without reviews has no rating, not a zero one.
func Mean(scores []int) (mean float64, ok bool) {
	if len(scores) == 0 {
		return 0, false
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}

	return float64(sum) / float64(len(scores)), true
}

// Round converts a mean to the displayed integer rating, rounding half
// away from zero (8.5 displays as 9).
func Round(mean float64) int {
	return int(math.Round(mean))
}

// FromScores computes the displayed rating, nil when there are no scores.
func FromScores(scores []int) *int {
	mean, ok := Mean(scores)
	if !ok {
		return nil
	}

	r := Round(mean)
	return &r
}

// FromAverage converts a SQL AVG result (NULL scanned as nil) to the
// displayed rating.
func FromAverage(avg *float64) *int {
	if avg == nil {
		return nil
	}

	r := Round(*avg)
	return &r
}
