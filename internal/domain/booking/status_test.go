package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusWaiting.CanTransitionTo(StatusApproved))
	assert.True(t, StatusWaiting.CanTransitionTo(StatusRejected))

	// Rejection withdraws even an approved booking; re-approval never works.
	assert.True(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusApproved.CanTransitionTo(StatusApproved))

	// A rejected booking may be revived by a later approval.
	assert.True(t, StatusRejected.CanTransitionTo(StatusApproved))
	assert.True(t, StatusRejected.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusWaiting))
}

// TestStatusTableMatchesAggregate pins the aggregate's approve/reject guards
// to the transition table so the two can never drift apart again.
func TestStatusTableMatchesAggregate(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for _, from := range []Status{StatusWaiting, StatusApproved, StatusRejected} {
		b := ReconstructBooking(uuid.New(), uuid.New(), uuid.New(),
			now.Add(time.Hour), now.Add(2*time.Hour), from, now, now)

		err := b.Approve()
		if from.CanTransitionTo(StatusApproved) {
			assert.NoError(t, err, "approve from %s", from)
			assert.Equal(t, StatusApproved, b.Status())
		} else {
			assert.Error(t, err, "approve from %s", from)
			assert.Equal(t, from, b.Status())
		}

		b = ReconstructBooking(uuid.New(), uuid.New(), uuid.New(),
			now.Add(time.Hour), now.Add(2*time.Hour), from, now, now)
		b.Reject()
		assert.Equal(t, StatusRejected, b.Status(), "reject from %s", from)
		assert.True(t, from.CanTransitionTo(StatusRejected), "table allows rejection from %s", from)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("WAITING")
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, status)

	_, err = ParseStatus("PENDING")
	assert.Error(t, err)

	_, err = ParseStatus("waiting")
	assert.Error(t, err, "persisted status values are uppercase only")
}
