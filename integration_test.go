//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendhub/service-lending/internal/application"
	"github.com/lendhub/service-lending/internal/events"
)

// TestBookingLifecycle drives a full booking through real PostgreSQL and
// Kafka: request, approval, the re-approval guard and the resulting events.
func TestBookingLifecycle(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupLendingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	ownerID := registerUser(t, stack, "owner", "owner@example.com")
	bookerID := registerUser(t, stack, "booker", "booker@example.com")
	itemID := listItem(t, stack, ownerID, "cordless drill", "18V cordless drill with charger")

	now := time.Now().UTC()
	booking, err := stack.Bookings.Create(ctx, itemID, bookerID, application.CreateBookingRequest{
		Start: now.Add(time.Hour),
		End:   now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", booking.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, testTopic, events.BookingRequested, 15*time.Second)
	var requested events.BookingRequestedEvent
	require.NoError(t, ce.ParseData(&requested))
	assert.Equal(t, booking.ID, requested.BookingID)
	assert.Equal(t, ownerID, requested.OwnerID)

	approved, err := stack.Bookings.Approve(ctx, booking.ID, ownerID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	ce = consumeOneEvent(t, infra.KafkaBrokers, testTopic, events.BookingApproved, 15*time.Second)
	var decided events.BookingDecidedEvent
	require.NoError(t, ce.ParseData(&decided))
	assert.Equal(t, booking.ID, decided.BookingID)
	assert.Equal(t, "APPROVED", decided.Status)

	// A second approval must fail; the persisted status stays APPROVED.
	_, err = stack.Bookings.Approve(ctx, booking.ID, ownerID, true)
	require.Error(t, err)

	got, err := stack.Bookings.Get(ctx, booking.ID, bookerID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", got.Status)

	// The booker's FUTURE view contains the booking, the owner's too.
	list, err := stack.Bookings.ListForBooker(ctx, bookerID, "FUTURE", nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, booking.ID, list[0].ID)

	list, err = stack.Bookings.ListForOwner(ctx, ownerID, "ALL", nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// TestCommentAfterFinishedBooking verifies the finished-booking gate on
// comments against a real database.
func TestCommentAfterFinishedBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupLendingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	ownerID := registerUser(t, stack, "owner", "owner@example.com")
	bookerID := registerUser(t, stack, "booker", "booker@example.com")
	itemID := listItem(t, stack, ownerID, "kayak", "single-seat kayak")

	_, err := stack.Comments.Create(ctx, bookerID, itemID, application.CreateCommentRequest{
		Text: "great kayak",
	})
	require.Error(t, err, "commenting without a finished booking is refused")

	seedFinishedBooking(t, infra.DB, itemID, bookerID)

	comment, err := stack.Comments.Create(ctx, bookerID, itemID, application.CreateCommentRequest{
		Text: "great kayak",
	})
	require.NoError(t, err)
	assert.Equal(t, "great kayak", comment.Text)

	// The owner's item view now carries both the comment and the past booking.
	item, err := stack.Items.Get(ctx, itemID, ownerID)
	require.NoError(t, err)
	require.Len(t, item.Comments, 1)
	require.NotNil(t, item.LastBooking)
	assert.Equal(t, bookerID, item.LastBooking.BookerID)
}
