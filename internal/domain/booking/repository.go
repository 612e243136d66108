package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for bookings. List results are
// always ordered by start descending; now is sampled once by the caller so a
// single request cannot straddle a CURRENT/PAST boundary.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// ListByBooker retrieves bookings requested by the user, filtered by state.
	ListByBooker(ctx context.Context, bookerID uuid.UUID, state State, now time.Time, page Page) ([]*Booking, error)

	// ListByOwner retrieves bookings against the user's items, filtered by state.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, state State, now time.Time, page Page) ([]*Booking, error)

	// FindLastForItem returns the item's booking with the greatest start before
	// now, or nil when the item has no past-or-ongoing booking.
	FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// FindNextForItem returns the item's booking with the smallest start after
	// now, or nil when the item has no upcoming booking.
	FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// ExistsForItem reports whether the item has any booking in any status.
	ExistsForItem(ctx context.Context, itemID uuid.UUID) (bool, error)

	// ExistsFinishedByBooker reports whether the user has a booking for the
	// item that ended before now.
	ExistsFinishedByBooker(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// UpdateStatus persists a status transition with a compare-and-set on the
	// previous status, so concurrent approvals cannot both win.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}
