package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lendhub/service-lending/internal/apperrors"
	bookingDomain "github.com/lendhub/service-lending/internal/domain/booking"
	itemDomain "github.com/lendhub/service-lending/internal/domain/item"
	requestDomain "github.com/lendhub/service-lending/internal/domain/request"
	userDomain "github.com/lendhub/service-lending/internal/domain/user"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id"`
}

// UpdateItemRequest patches an item; nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingBriefDTO annotates an item view with one adjacent booking.
type BookingBriefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

// CommentDTO is the response representation of an item comment.
type CommentDTO struct {
	ID       uuid.UUID `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are only filled in for the owner's view.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *uuid.UUID       `json:"request_id,omitempty"`
	LastBooking *BookingBriefDTO `json:"last_booking,omitempty"`
	NextBooking *BookingBriefDTO `json:"next_booking,omitempty"`
	Comments    []CommentDTO     `json:"comments,omitempty"`
}

// ItemService implements use cases for item listings.
type ItemService struct {
	items     itemDomain.Repository
	users     userDomain.Repository
	bookings  bookingDomain.Repository
	comments  itemDomain.CommentRepository
	requests  requestDomain.Repository
	projector availabilityProjector
	logger    *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	comments itemDomain.CommentRepository,
	requests requestDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		bookings:  bookings,
		comments:  comments,
		requests:  requests,
		projector: availabilityProjector{bookings: bookings},
		logger:    logger,
	}
}

// Create lists a new item for the given owner. When the item answers an open
// item request, the request must resolve.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("user", ownerID.String())
	}

	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			// A missing request is the caller's mistake; anything else is not.
			if apperrors.IsNotFound(err) {
				return nil, apperrors.NewValidationError("request not found")
			}
			return nil, fmt.Errorf("failed to resolve item request: %w", err)
		}
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it)
	return &result, nil
}

// Update patches an item. Only the owner may update; anyone else gets
// "not found".
func (s *ItemService) Update(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, apperrors.NewPermissionError("cannot update an item through a different user")
	}

	it.ApplyUpdate(req.Name, req.Description, req.Available)

	if err := s.items.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	result := toItemDTO(it)
	return &result, nil
}

// Get retrieves one item with its comments. When the viewer owns the item and
// the item has been booked at least once, the view is annotated with the last
// and next booking.
func (s *ItemService) Get(ctx context.Context, itemID, viewerID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := toItemDTO(it)

	if it.IsOwnedBy(viewerID) {
		booked, err := s.bookings.ExistsForItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to check item bookings: %w", err)
		}
		if booked {
			if err := s.annotate(ctx, &result, time.Now().UTC()); err != nil {
				return nil, err
			}
		}
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	result.Comments = toCommentDTOs(comments)

	return &result, nil
}

// ListForOwner returns the owner's items annotated with their last and next
// bookings, unpaged or paged.
func (s *ItemService) ListForOwner(ctx context.Context, ownerID uuid.UUID, from, size *int) ([]ItemDTO, error) {
	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	now := time.Now().UTC()
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
		if err := s.annotate(ctx, &dtos[i], now); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// Search finds available items matching the text in name or description.
// A blank query returns an empty result rather than everything.
func (s *ItemService) Search(ctx context.Context, text string, from, size *int) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

func (s *ItemService) annotate(ctx context.Context, dto *ItemDTO, now time.Time) error {
	last, next, err := s.projector.project(ctx, dto.ID, now)
	if err != nil {
		return err
	}
	dto.LastBooking = toBookingBriefDTO(last)
	dto.NextBooking = toBookingBriefDTO(next)
	return nil
}

// --- Helpers ---

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
	}
}

func toBookingBriefDTO(bk *bookingDomain.Booking) *BookingBriefDTO {
	if bk == nil {
		return nil
	}
	return &BookingBriefDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
		Status:   bk.Status().String(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = CommentDTO{
			ID:       c.ID(),
			AuthorID: c.AuthorID(),
			Text:     c.Text(),
			Created:  c.Created(),
		}
	}
	return dtos
}
