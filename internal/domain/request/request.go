package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/apperrors"
)

// ItemRequest is a user's published wish for an item that nobody has listed
// yet. Owners answer it by creating an item that references the request.
type ItemRequest struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	created     time.Time
}

// NewItemRequest creates an item request with a non-empty description.
func NewItemRequest(requesterID uuid.UUID, description string, created time.Time) (*ItemRequest, error) {
	if description == "" {
		return nil, apperrors.NewValidationError("request description is required")
	}
	return &ItemRequest{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		created:     created,
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data.
func Reconstruct(id, requesterID uuid.UUID, description string, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		created:     created,
	}
}

func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) Created() time.Time     { return r.created }
