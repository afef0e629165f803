package repositories

import (
	"context"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause" // FOR UPDATE kilidi için
)

// IBookingRepository rezervasyon veritabanı işlemleri için arayüz.
type IBookingRepository interface {
	// CreateWithinCapacity kapasite kontrolünü ve kaydı tek atomik adımda yapar.
	// Etkinlik yoksa ErrNotFound, üye yoksa ErrMemberNotFound, koltuk yetmezse *InsufficientSeatsError döner.
	CreateWithinCapacity(ctx context.Context, booking *models.Booking) error
	// FindOwned sadece üyeye ait rezervasyonu döndürür; başkasınınki için ErrNotFound.
	FindOwned(ctx context.Context, id, memberID uint) (*models.Booking, error)
	ListByMember(ctx context.Context, memberID uint) ([]models.Booking, error)
	List(ctx context.Context, filter queryparams.BookingFilter) ([]models.Booking, error)
	DeleteOwned(ctx context.Context, id, memberID uint) error
	ExistsForMemberEvent(ctx context.Context, memberID, eventID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// BookingRepository IBookingRepository arayüzünü uygular.
type BookingRepository struct {
	db *gorm.DB
}

var _ IBookingRepository = (*BookingRepository)(nil)

// NewBookingRepository yeni bir BookingRepository örneği oluşturur.
func NewBookingRepository(db *gorm.DB) IBookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// CreateWithinCapacity etkinlik satırını FOR UPDATE ile kilitler; aynı etkinliğe gelen
// eşzamanlı rezervasyonlar bu kilit üzerinde sıraya girer.
func (r *BookingRepository) CreateWithinCapacity(ctx context.Context, booking *models.Booking) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "total_seats").
			Take(&event, booking.EventID).Error
		if err != nil {
			return notFoundOr(err)
		}

		booked, err := bookedSeats(tx, booking.EventID)
		if err != nil {
			return err
		}

		available := event.TotalSeats - booked
		if booking.Quantity > available {
			if available < 0 {
				available = 0
			}
			return &InsufficientSeatsError{Available: available}
		}

		if err := tx.Create(booking).Error; err != nil {
			// Etkinlik satırı kilitli olduğundan yabancı anahtar hatası yalnızca üyeden gelebilir
			if isForeignKeyViolation(err) {
				return ErrMemberNotFound
			}
			configslog.Log.Error("BookingRepository.CreateWithinCapacity: DB error",
				zap.Uint("event_id", booking.EventID), zap.Uint("member_id", booking.MemberID), zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *BookingRepository) FindOwned(ctx context.Context, id, memberID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.getDB(ctx).Preload("Event", preloadEventWithSeats).
		Where("id = ? AND member_id = ?", id, memberID).
		Take(&booking).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &booking, nil
}

// ListByMember üyenin rezervasyonlarını en yeniden eskiye getirir.
func (r *BookingRepository) ListByMember(ctx context.Context, memberID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.getDB(ctx).Preload("Event", preloadEventWithSeats).
		Where("member_id = ?", memberID).
		Order("booking_date DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		configslog.Log.Error("BookingRepository.ListByMember: DB error", zap.Uint("member_id", memberID), zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

// List yönetici görünümü için rezervasyonları filtreleyerek getirir.
func (r *BookingRepository) List(ctx context.Context, filter queryparams.BookingFilter) ([]models.Booking, error) {
	query := r.getDB(ctx).Preload("Event", preloadEventWithSeats).Preload("Member")
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}

	var bookings []models.Booking
	if err := query.Order("booking_date DESC, id DESC").Find(&bookings).Error; err != nil {
		configslog.Log.Error("BookingRepository.List: DB error", zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) DeleteOwned(ctx context.Context, id, memberID uint) error {
	result := r.getDB(ctx).Where("id = ? AND member_id = ?", id, memberID).Delete(&models.Booking{})
	if result.Error != nil {
		configslog.Log.Error("BookingRepository.DeleteOwned: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ExistsForMemberEvent(ctx context.Context, memberID, eventID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Booking{}).
		Where("member_id = ? AND event_id = ?", memberID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, err
}
