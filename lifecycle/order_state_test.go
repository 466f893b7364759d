package lifecycle

import (
	"testing"

	"marketplace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketsPartitionStatusSet(t *testing.T) {
	want := map[models.OrderStatus]Bucket{
		models.StatusPending:    BucketNew,
		models.StatusConfirmed:  BucketNew,
		models.StatusPreparing:  BucketPreparing,
		models.StatusDelivering: BucketWaiting,
		models.StatusCompleted:  BucketHistory,
		models.StatusCancelled:  BucketHistory,
	}
	// every declared status must have exactly one bucket
	require.Len(t, want, len(models.AllStatuses), "bucket table out of sync with status set")

	perBucket := map[Bucket]int{}
	for _, status := range models.AllStatuses {
		b := BucketFor(status)
		assert.Equal(t, want[status], b, "status %s", status)
		perBucket[b]++
	}

	// no bucket is empty, no status is filed twice
	total := 0
	for _, bucket := range AllBuckets {
		assert.Greater(t, perBucket[bucket], 0, "bucket %s has no statuses", bucket)
		total += perBucket[bucket]
	}
	assert.Equal(t, len(models.AllStatuses), total)
}

func TestCanCancel(t *testing.T) {
	cases := map[models.OrderStatus]bool{
		models.StatusPending:    true,
		models.StatusConfirmed:  true,
		models.StatusPreparing:  true,
		models.StatusDelivering: false,
		models.StatusCompleted:  false,
		models.StatusCancelled:  false,
	}
	require.Len(t, cases, len(models.AllStatuses))
	for status, want := range cases {
		assert.Equal(t, want, CanCancel(status), "status %s", status)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, status := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		assert.True(t, IsTerminal(status))
		assert.Empty(t, ValidTransitionsFrom(status), "status %s", status)
	}
	assert.False(t, IsTerminal(models.StatusDelivering))
}

func TestCanTransition(t *testing.T) {
	// happy path through the full lifecycle
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusConfirmed, ActorRestaurant))
	assert.NoError(t, CanTransition(models.StatusConfirmed, models.StatusPreparing, ActorRestaurant))
	assert.NoError(t, CanTransition(models.StatusPreparing, models.StatusDelivering, ActorRestaurant))
	assert.NoError(t, CanTransition(models.StatusDelivering, models.StatusCompleted, ActorRestaurant))
	assert.NoError(t, CanTransition(models.StatusDelivering, models.StatusCompleted, ActorSystem))

	// confirming is a restaurant action
	assert.Error(t, CanTransition(models.StatusPending, models.StatusConfirmed, ActorCustomer))

	// cancellation stops once delivery is in motion
	assert.NoError(t, CanTransition(models.StatusConfirmed, models.StatusCancelled, ActorCustomer))
	assert.NoError(t, CanTransition(models.StatusPreparing, models.StatusCancelled, ActorRestaurant))
	assert.Error(t, CanTransition(models.StatusDelivering, models.StatusCancelled, ActorCustomer))
	assert.Error(t, CanTransition(models.StatusDelivering, models.StatusCancelled, ActorRestaurant))

	// no resurrection from terminal states
	assert.Error(t, CanTransition(models.StatusCancelled, models.StatusConfirmed, ActorRestaurant))
	assert.Error(t, CanTransition(models.StatusCompleted, models.StatusDelivering, ActorSystem))

	// skipping states is not allowed
	assert.Error(t, CanTransition(models.StatusPending, models.StatusPreparing, ActorRestaurant))
}

func TestCanTransitionErrorDescribesAlternatives(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusDelivering, ActorRestaurant)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PENDING")
	assert.Contains(t, err.Error(), "CONFIRMED")
}

func TestTransitionTableMatchesCancelPredicate(t *testing.T) {
	// CanCancel and the transition table must agree: a cancel transition
	// exists for some actor exactly when the predicate allows it
	for _, status := range models.AllStatuses {
		allowed := CanTransition(status, models.StatusCancelled, ActorCustomer) == nil ||
			CanTransition(status, models.StatusCancelled, ActorRestaurant) == nil
		assert.Equal(t, CanCancel(status), allowed, "status %s", status)
	}
}
