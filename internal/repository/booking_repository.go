package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lendhub/service-lending/internal/apperrors"
	bookingDomain "github.com/lendhub/service-lending/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;size:10;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// stateScopes maps each filter state to the query clause that selects it.
// Adding a temporal bucket means adding one row here.
var stateScopes = map[bookingDomain.State]func(now time.Time) func(*gorm.DB) *gorm.DB{
	bookingDomain.StateAll: func(time.Time) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB { return db }
	},
	bookingDomain.StatePast: func(now time.Time) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB { return db.Where("bookings.end_at < ?", now) }
	},
	bookingDomain.StateCurrent: func(now time.Time) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("bookings.start_at < ? AND bookings.end_at > ?", now, now)
		}
	},
	bookingDomain.StateFuture: func(now time.Time) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB { return db.Where("bookings.start_at > ?", now) }
	},
	bookingDomain.StateWaiting: func(time.Time) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("bookings.status = ?", bookingDomain.StatusWaiting.String())
		}
	},
	bookingDomain.StateRejected: func(time.Time) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("bookings.status = ?", bookingDomain.StatusRejected.String())
		}
	},
}

// pageScope applies the page descriptor, or nothing for an unpaged query.
func pageScope(page bookingDomain.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Unpaged {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository contract.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// ListByBooker retrieves bookings requested by the user, filtered by state,
// ordered by start descending.
func (r *GormBookingRepository) ListByBooker(ctx context.Context, bookerID uuid.UUID, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("bookings.booker_id = ?", bookerID).
		Scopes(stateScopes[state](now), pageScope(page)).
		Order("bookings.start_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}
	return toDomainBookings(models), nil
}

// ListByOwner retrieves bookings against the user's items, filtered by state,
// ordered by start descending.
func (r *GormBookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Scopes(stateScopes[state](now), pageScope(page)).
		Order("bookings.start_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindLastForItem returns the item's booking with the greatest start before now.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_at < ?", itemID, now).
		Order("start_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindNextForItem returns the item's booking with the smallest start after now.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_at > ?", itemID, now).
		Order("start_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking: %w", err)
	}
	return toDomainBooking(&model), nil
}

// ExistsForItem reports whether the item has any booking in any status.
func (r *GormBookingRepository) ExistsForItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count item bookings: %w", err)
	}
	return count > 0, nil
}

// ExistsFinishedByBooker reports whether the user has a booking for the item
// that ended before now.
func (r *GormBookingRepository) ExistsFinishedByBooker(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND end_at < ?", bookerID, itemID, now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count > 0, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStatus persists a status transition with a compare-and-set on the
// previous status. A lost race surfaces as a conflict.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to bookingDomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]interface{}{
			"status":     to.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("booking status was changed by another request")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    bk.Status().String(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartAt,
		m.EndAt,
		bookingDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainBookings(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings
}
