package models

import "github.com/shopspring/decimal"

// AmountBucket is one of the disjoint amount ranges used by the SRB amount
// distribution.
type AmountBucket string

const (
	BucketAboveThreshold3 AmountBucket = "aboveThreshold3"
	BucketThreshold2To3   AmountBucket = "threshold2To3"
	BucketThreshold1To2   AmountBucket = "threshold1To2"
	BucketBelowThreshold1 AmountBucket = "belowThreshold1"
	BucketNoAmount        AmountBucket = "noAmount"
)

// Bucket boundaries, inclusive lower bounds.
var (
	AmountThreshold1 = decimal.NewFromInt(100_000)
	AmountThreshold2 = decimal.NewFromInt(1_000_000)
	AmountThreshold3 = decimal.NewFromInt(10_000_000)
)

// AllAmountBuckets is the fixed output order of the distribution.
var AllAmountBuckets = []AmountBucket{
	BucketAboveThreshold3,
	BucketThreshold2To3,
	BucketThreshold1To2,
	BucketBelowThreshold1,
	BucketNoAmount,
}
