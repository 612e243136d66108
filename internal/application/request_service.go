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
	requestDomain "github.com/lendhub/service-lending/internal/domain/request"
	userDomain "github.com/lendhub/service-lending/internal/domain/user"
)

// CreateItemRequestRequest holds the description of a wished-for item.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// ItemRequestDTO is the response representation of an item request, with the
// items listed in answer to it.
type ItemRequestDTO struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

// RequestService implements item request use cases.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// Create publishes a new item request for the given user.
func (s *RequestService) Create(ctx context.Context, requesterID uuid.UUID, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(requesterID, req.Description, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.requests.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save item request: %w", err)
	}

	s.logger.Info("item request created",
		zap.String("request_id", r.ID().String()),
		zap.String("requester_id", requesterID.String()),
	)
	result := toItemRequestDTO(r, nil)
	result.Items = []ItemDTO{}
	return &result, nil
}

// ListOwn returns the user's own requests, newest first, with the items
// listed in answer to each.
func (s *RequestService) ListOwn(ctx context.Context, requesterID uuid.UUID) ([]ItemRequestDTO, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

// ListOthers returns everyone else's requests, newest first, paged.
func (s *RequestService) ListOthers(ctx context.Context, requesterID uuid.UUID, from, size *int) ([]ItemRequestDTO, error) {
	if err := s.checkUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	page, err := bookingDomain.NewPage(from, size)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.ListOthers(ctx, requesterID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return s.attachItems(ctx, requests)
}

// Get retrieves one request by id, with its responding items.
func (s *RequestService) Get(ctx context.Context, viewerID, requestID uuid.UUID) (*ItemRequestDTO, error) {
	if err := s.checkUserExists(ctx, viewerID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.attachItems(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *RequestService) checkUserExists(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("user", userID.String())
	}
	return nil
}

// attachItems resolves the responding items for a batch of requests with a
// single repository call.
func (s *RequestService) attachItems(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.ID()
	}

	var items []*itemDomain.Item
	if len(ids) > 0 {
		var err error
		items, err = s.items.ListByRequest(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to list items by request: %w", err)
		}
	}

	byRequest := make(map[uuid.UUID][]ItemDTO)
	for _, it := range items {
		if it.RequestID() == nil {
			continue
		}
		byRequest[*it.RequestID()] = append(byRequest[*it.RequestID()], toItemDTO(it))
	}

	dtos := make([]ItemRequestDTO, len(requests))
	for i, r := range requests {
		answered := byRequest[r.ID()]
		if answered == nil {
			answered = []ItemDTO{}
		}
		dtos[i] = toItemRequestDTO(r, answered)
	}
	return dtos, nil
}

func toItemRequestDTO(r *requestDomain.ItemRequest, items []ItemDTO) ItemRequestDTO {
	return ItemRequestDTO{
		ID:          r.ID(),
		RequesterID: r.RequesterID(),
		Description: r.Description(),
		Created:     r.Created(),
		Items:       items,
	}
}
