package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/apperrors"
)

// Comment is feedback left on an item by a user who finished a booking for it.
type Comment struct {
	id       uuid.UUID
	itemID   uuid.UUID
	authorID uuid.UUID
	text     string
	created  time.Time
}

// NewComment creates a comment with a non-empty text.
func NewComment(itemID, authorID uuid.UUID, text string, created time.Time) (*Comment, error) {
	if text == "" {
		return nil, apperrors.NewValidationError("comment text is required")
	}
	return &Comment{
		id:       uuid.New(),
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id, itemID, authorID uuid.UUID, text string, created time.Time) *Comment {
	return &Comment{
		id:       id,
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}
}

func (c *Comment) ID() uuid.UUID       { return c.id }
func (c *Comment) ItemID() uuid.UUID   { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }
func (c *Comment) Text() string        { return c.text }
func (c *Comment) Created() time.Time  { return c.created }
