package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/apperrors"
)

// Booking is the aggregate root for one time-bounded reservation request
// against an item, awaiting the item owner's approval.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   Status

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking with status WAITING after validating the time
// window against now: neither bound may lie in the past, the end may not
// precede the start, and a zero-length window is rejected.
func NewBooking(itemID, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, apperrors.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, apperrors.NewValidationError("booker ID is required")
	}
	if start.Before(now) || end.Before(now) || end.Before(start) || start.Equal(end) {
		return nil, apperrors.NewValidationError("invalid start and/or end time")
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the id of the reserved item.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the id of the requesting user.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the start of the reservation window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the reservation window.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current approval status.
func (b *Booking) Status() Status { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsBookedBy reports whether the given user requested this booking.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// Approve marks the booking approved when the state machine allows it.
// Re-approving an approved booking fails; approving a rejected one is
// allowed, mirroring the one-sided guard of the approval endpoint.
func (b *Booking) Approve() error {
	if !b.status.CanTransitionTo(StatusApproved) {
		return apperrors.NewValidationError("status cannot be changed after approval")
	}
	b.status = StatusApproved
	b.updatedAt = time.Now().UTC()
	return nil
}

// Reject marks the booking rejected. Every status may transition to
// REJECTED, so unlike Approve this cannot fail.
func (b *Booking) Reject() {
	if b.status.CanTransitionTo(StatusRejected) {
		b.status = StatusRejected
		b.updatedAt = time.Now().UTC()
	}
}
