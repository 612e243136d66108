package item

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/domain/booking"
)

// Repository defines the persistence contract for items.
type Repository interface {
	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// ListByOwner retrieves the owner's items, oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page booking.Page) ([]*Item, error)

	// ListByRequest retrieves the items created in answer to the given requests.
	ListByRequest(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)

	// Search finds available items whose name or description contains the
	// text, case-insensitively.
	Search(ctx context.Context, text string, page booking.Page) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, it *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, it *Item) error
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// ListByItem retrieves all comments for an item, oldest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// Save persists a new comment.
	Save(ctx context.Context, c *Comment) error
}
