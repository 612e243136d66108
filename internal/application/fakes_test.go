package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lendhub/service-lending/internal/apperrors"
	bookingDomain "github.com/lendhub/service-lending/internal/domain/booking"
	itemDomain "github.com/lendhub/service-lending/internal/domain/item"
	requestDomain "github.com/lendhub/service-lending/internal/domain/request"
	userDomain "github.com/lendhub/service-lending/internal/domain/user"
)

// In-memory repository fakes mirroring the filter and ordering semantics of
// the GORM implementations.

type fakeUserRepo struct {
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo(users ...*userDomain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
	for _, u := range users {
		repo.users[u.ID()] = u
	}
	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*userDomain.User, error) {
	all := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return apperrors.NewNotFoundError("user", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.NewNotFoundError("user", id.String())
	}
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	items []*itemDomain.Item
}

func newFakeItemRepo(items ...*itemDomain.Item) *fakeItemRepo {
	return &fakeItemRepo{items: items}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	for _, it := range r.items {
		if it.ID() == id {
			return it, nil
		}
	}
	return nil, apperrors.NewNotFoundError("item", id.String())
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, page bookingDomain.Page) ([]*itemDomain.Item, error) {
	var owned []*itemDomain.Item
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			owned = append(owned, it)
		}
	}
	return applyItemPage(owned, page), nil
}

func (r *fakeItemRepo) ListByRequest(_ context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	wanted := make(map[uuid.UUID]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = struct{}{}
	}
	var result []*itemDomain.Item
	for _, it := range r.items {
		if it.RequestID() == nil {
			continue
		}
		if _, ok := wanted[*it.RequestID()]; ok {
			result = append(result, it)
		}
	}
	return result, nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, page bookingDomain.Page) ([]*itemDomain.Item, error) {
	needle := strings.ToLower(text)
	var matched []*itemDomain.Item
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle) {
			matched = append(matched, it)
		}
	}
	return applyItemPage(matched, page), nil
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) error {
	r.items = append(r.items, it)
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	for i, existing := range r.items {
		if existing.ID() == it.ID() {
			r.items[i] = it
			return nil
		}
	}
	return apperrors.NewNotFoundError("item", it.ID().String())
}

func applyItemPage(items []*itemDomain.Item, page bookingDomain.Page) []*itemDomain.Item {
	if page.Unpaged {
		return items
	}
	offset := page.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakeBookingRepo struct {
	bookings []*bookingDomain.Booking
	// itemOwner resolves an item to its owner for ListByOwner.
	itemOwner map[uuid.UUID]uuid.UUID

	lastListPage bookingDomain.Page
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{itemOwner: make(map[uuid.UUID]uuid.UUID)}
}

func (r *fakeBookingRepo) register(it *itemDomain.Item) {
	r.itemOwner[it.ID()] = it.OwnerID()
}

// FindByID returns a detached copy, like a row read from the database, so
// callers mutating the aggregate do not touch the store until UpdateStatus.
func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	for _, b := range r.bookings {
		if b.ID() == id {
			return bookingDomain.ReconstructBooking(
				b.ID(), b.ItemID(), b.BookerID(),
				b.Start(), b.End(), b.Status(),
				b.CreatedAt(), b.UpdatedAt(),
			), nil
		}
	}
	return nil, apperrors.NewNotFoundError("booking", id.String())
}

func matchesState(b *bookingDomain.Booking, state bookingDomain.State, now time.Time) bool {
	switch state {
	case bookingDomain.StateAll:
		return true
	case bookingDomain.StatePast:
		return b.End().Before(now)
	case bookingDomain.StateCurrent:
		return b.Start().Before(now) && b.End().After(now)
	case bookingDomain.StateFuture:
		return b.Start().After(now)
	case bookingDomain.StateWaiting:
		return b.Status() == bookingDomain.StatusWaiting
	case bookingDomain.StateRejected:
		return b.Status() == bookingDomain.StatusRejected
	}
	return false
}

func (r *fakeBookingRepo) list(match func(*bookingDomain.Booking) bool, state bookingDomain.State, now time.Time, page bookingDomain.Page) []*bookingDomain.Booking {
	r.lastListPage = page

	var result []*bookingDomain.Booking
	for _, b := range r.bookings {
		if match(b) && matchesState(b, state, now) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start().After(result[j].Start())
	})
	if page.Unpaged {
		return result
	}
	offset := page.Offset()
	if offset >= len(result) {
		return nil
	}
	end := offset + page.Size
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end]
}

func (r *fakeBookingRepo) ListByBooker(_ context.Context, bookerID uuid.UUID, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsBookedBy(bookerID)
	}, state, now, page), nil
}

func (r *fakeBookingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return r.itemOwner[b.ItemID()] == ownerID
	}, state, now, page), nil
}

func (r *fakeBookingRepo) FindLastForItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var last *bookingDomain.Booking
	for _, b := range r.bookings {
		if b.ItemID() != itemID || !b.Start().Before(now) {
			continue
		}
		if last == nil || b.Start().After(last.Start()) {
			last = b
		}
	}
	return last, nil
}

func (r *fakeBookingRepo) FindNextForItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var next *bookingDomain.Booking
	for _, b := range r.bookings {
		if b.ItemID() != itemID || !b.Start().After(now) {
			continue
		}
		if next == nil || b.Start().Before(next.Start()) {
			next = b
		}
	}
	return next, nil
}

func (r *fakeBookingRepo) ExistsForItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	for _, b := range r.bookings {
		if b.ItemID() == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ExistsFinishedByBooker(_ context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.IsBookedBy(bookerID) && b.ItemID() == itemID && b.End().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to bookingDomain.Status) error {
	for i, b := range r.bookings {
		if b.ID() == id && b.Status() == from {
			r.bookings[i] = bookingDomain.ReconstructBooking(
				b.ID(), b.ItemID(), b.BookerID(),
				b.Start(), b.End(), to,
				b.CreatedAt(), time.Now().UTC(),
			)
			return nil
		}
	}
	return apperrors.NewConflictError("booking status was changed by another request")
}

type fakeCommentRepo struct {
	comments []*itemDomain.Comment
}

func (r *fakeCommentRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	var result []*itemDomain.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Save(_ context.Context, c *itemDomain.Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

type fakeRequestRepo struct {
	requests []*requestDomain.ItemRequest
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	for _, req := range r.requests {
		if req.ID() == id {
			return req, nil
		}
	}
	return nil, apperrors.NewNotFoundError("request", id.String())
}

func (r *fakeRequestRepo) ListByRequester(_ context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	var result []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if req.RequesterID() == requesterID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) ListOthers(_ context.Context, requesterID uuid.UUID, _ bookingDomain.Page) ([]*requestDomain.ItemRequest, error) {
	var result []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if req.RequesterID() != requesterID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.ItemRequest) error {
	r.requests = append(r.requests, req)
	return nil
}

// --- Fixture helpers ---

func mustUser(name, email string) *userDomain.User {
	u, err := userDomain.NewUser(name, email)
	if err != nil {
		panic(err)
	}
	return u
}

func mustItem(ownerID uuid.UUID, name, description string, available bool) *itemDomain.Item {
	it, err := itemDomain.NewItem(ownerID, name, description, available, nil)
	if err != nil {
		panic(err)
	}
	return it
}

func seedBooking(itemID, bookerID uuid.UUID, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	created := time.Now().UTC()
	return bookingDomain.ReconstructBooking(uuid.New(), itemID, bookerID, start, end, status, created, created)
}
