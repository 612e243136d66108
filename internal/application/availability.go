package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/lendhub/service-lending/internal/domain/booking"
)

// availabilityProjector computes the last and next booking of an item for
// owner-facing item views.
type availabilityProjector struct {
	bookings bookingDomain.Repository
}

// project returns the most recent booking started before now and the nearest
// booking starting after now. A rejected upcoming booking must never surface
// as the next reservation, so it is reported as absent.
func (p availabilityProjector) project(ctx context.Context, itemID uuid.UUID, now time.Time) (last, next *bookingDomain.Booking, err error) {
	last, err = p.bookings.FindLastForItem(ctx, itemID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find last booking: %w", err)
	}
	next, err = p.bookings.FindNextForItem(ctx, itemID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find next booking: %w", err)
	}
	if next != nil && next.Status() == bookingDomain.StatusRejected {
		next = nil
	}
	return last, next, nil
}
