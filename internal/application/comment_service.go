package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lendhub/service-lending/internal/apperrors"
	bookingDomain "github.com/lendhub/service-lending/internal/domain/booking"
	itemDomain "github.com/lendhub/service-lending/internal/domain/item"
	userDomain "github.com/lendhub/service-lending/internal/domain/user"
)

// CreateCommentRequest holds the text of a new item comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentService implements the comment-posting use case.
type CommentService struct {
	comments itemDomain.CommentRepository
	bookings bookingDomain.Repository
	users    userDomain.Repository
	items    itemDomain.Repository
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments itemDomain.CommentRepository,
	bookings bookingDomain.Repository,
	users userDomain.Repository,
	items itemDomain.Repository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		bookings: bookings,
		users:    users,
		items:    items,
		logger:   logger,
	}
}

// Create posts a comment on an item. Only users whose booking of the item has
// already ended may comment.
func (s *CommentService) Create(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	now := time.Now().UTC()

	finished, err := s.bookings.ExistsFinishedByBooker(ctx, authorID, itemID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	if !finished {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("no finished booking found for user %s and item %s", authorID, itemID))
	}

	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	comment, err := itemDomain.NewComment(itemID, authorID, req.Text, now)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info("comment created",
		zap.String("item_id", itemID.String()),
		zap.String("author_id", authorID.String()),
	)
	return &CommentDTO{
		ID:       comment.ID(),
		AuthorID: comment.AuthorID(),
		Text:     comment.Text(),
		Created:  comment.Created(),
	}, nil
}
