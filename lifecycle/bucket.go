package lifecycle

import "marketplace-api/models"

// Bucket is the coarse tab an order is filed under in list views, distinct
// from the fine-grained status
type Bucket string

const (
	BucketNew       Bucket = "NEW"
	BucketPreparing Bucket = "PREPARING"
	BucketWaiting   Bucket = "WAITING"
	BucketHistory   Bucket = "HISTORY"
)

// AllBuckets in display order
var AllBuckets = []Bucket{BucketNew, BucketPreparing, BucketWaiting, BucketHistory}

// BucketFor maps a status to its presentation tab. The mapping must stay
// exhaustive over models.AllStatuses; the package test fails when a status
// is added without a case here.
func BucketFor(status models.OrderStatus) Bucket {
	switch status {
	case models.StatusPending, models.StatusConfirmed:
		return BucketNew
	case models.StatusPreparing:
		return BucketPreparing
	case models.StatusDelivering:
		return BucketWaiting
	case models.StatusCompleted, models.StatusCancelled:
		return BucketHistory
	}
	// unknown statuses land in history rather than vanishing from the board
	return BucketHistory
}
