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
	"github.com/lendhub/service-lending/internal/events"
)

// CreateBookingRequest holds the data needed to request a new booking.
type CreateBookingRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingService is the application service orchestrating the booking lifecycle.
type BookingService struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	producer *events.Producer
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService. producer may be nil, in
// which case no events are published.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	producer *events.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// Create requests a new booking of the item by the given user. The booking
// starts out WAITING for the owner's decision. Preconditions are checked in a
// fixed order: the booker must exist, the time window must be valid, the item
// must exist and be available, and owners cannot book their own items.
func (s *BookingService) Create(ctx context.Context, itemID, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if err := s.checkUserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bk, err := bookingDomain.NewBooking(itemID, bookerID, req.Start, req.End, now)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, apperrors.NewValidationError("this item is not available for booking")
	}
	// Self-booking answers "not found" on purpose, like every other
	// permission mismatch in this service.
	if it.IsOwnedBy(bookerID) {
		return nil, apperrors.NewPermissionError("the owner cannot book their own item")
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishRequested(ctx, bk, it.OwnerID())

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", itemID.String()),
		zap.String("booker_id", bookerID.String()),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// Approve lets the item's owner approve or reject a waiting booking.
// Approval is one-way: once APPROVED the status cannot be changed again.
// Rejection is deliberately unguarded and also withdraws an approved booking.
func (s *BookingService) Approve(ctx context.Context, bookingID, userID uuid.UUID, isApproved bool) (*BookingDTO, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(userID) {
		return nil, apperrors.NewPermissionError("this item does not belong to this user")
	}

	prev := bk.Status()
	if isApproved {
		if err := bk.Approve(); err != nil {
			return nil, err
		}
	} else {
		bk.Reject()
	}

	if err := s.bookings.UpdateStatus(ctx, bk.ID(), prev, bk.Status()); err != nil {
		return nil, err
	}

	s.publishDecided(ctx, bk, it.OwnerID())

	s.logger.Info("booking decided",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", bk.Status().String()),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// Get retrieves a single booking. Only the booker and the item's owner may
// see it; any third party gets "not found".
func (s *BookingService) Get(ctx context.Context, bookingID, userID uuid.UUID) (*BookingDTO, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(userID) && !it.IsOwnedBy(userID) {
		return nil, apperrors.NewPermissionError("this user has no permission for this booking")
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListForBooker returns the user's own bookings matching the state token,
// ordered by start descending.
func (s *BookingService) ListForBooker(ctx context.Context, userID uuid.UUID, stateToken string, from, size *int) ([]BookingDTO, error) {
	state, page, now, err := s.prepareList(ctx, userID, stateToken, from, size)
	if err != nil {
		return nil, err
	}

	result, err := s.bookings.ListByBooker(ctx, userID, state, now, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for booker: %w", err)
	}
	return toBookingDTOs(result), nil
}

// ListForOwner returns the bookings against the user's items matching the
// state token, ordered by start descending.
func (s *BookingService) ListForOwner(ctx context.Context, userID uuid.UUID, stateToken string, from, size *int) ([]BookingDTO, error) {
	state, page, now, err := s.prepareList(ctx, userID, stateToken, from, size)
	if err != nil {
		return nil, err
	}

	result, err := s.bookings.ListByOwner(ctx, userID, state, now, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for owner: %w", err)
	}
	return toBookingDTOs(result), nil
}

// prepareList runs the shared precondition chain of both list operations and
// samples now once, so one request cannot straddle a temporal boundary.
func (s *BookingService) prepareList(ctx context.Context, userID uuid.UUID, stateToken string, from, size *int) (bookingDomain.State, bookingDomain.Page, time.Time, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return "", bookingDomain.Page{}, time.Time{}, err
	}
	state, err := bookingDomain.ParseState(stateToken)
	if err != nil {
		return "", bookingDomain.Page{}, time.Time{}, err
	}
	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		return "", bookingDomain.Page{}, time.Time{}, err
	}
	return state, page, time.Now().UTC(), nil
}

func (s *BookingService) checkUserExists(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("user", userID.String())
	}
	return nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    bk.Status().String(),
		CreatedAt: bk.CreatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishRequested(ctx context.Context, bk *bookingDomain.Booking, ownerID uuid.UUID) {
	evt := events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.BookingRequested, bk.ID().String(), evt)
}

func (s *BookingService) publishDecided(ctx context.Context, bk *bookingDomain.Booking, ownerID uuid.UUID) {
	eventType := events.BookingApproved
	if bk.Status() == bookingDomain.StatusRejected {
		eventType = events.BookingRejected
	}
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Status:     bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), evt)
}

// publishEvent is best effort: a broker outage must not fail the request.
func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := events.NewCloudEvent("service-lending", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.Publish(ctx, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
