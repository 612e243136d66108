package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/domain/booking"
)

// Repository defines the persistence contract for item requests.
type Repository interface {
	// FindByID retrieves an item request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// ListByRequester retrieves the user's own requests, newest first.
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// ListOthers retrieves requests published by everyone except the user,
	// newest first.
	ListOthers(ctx context.Context, requesterID uuid.UUID, page booking.Page) ([]*ItemRequest, error)

	// Save persists a new item request.
	Save(ctx context.Context, r *ItemRequest) error
}
