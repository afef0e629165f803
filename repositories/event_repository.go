package repositories

import (
	"context"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
// Okuma metodları BookedSeats alanını rezervasyon toplamıyla doldurur.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	List(ctx context.Context, filter queryparams.EventFilter) ([]models.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error)
	Categories(ctx context.Context) ([]string, error)
	// Update etkinlik satırını kilitler; toplam koltuk satılmış koltuğun altına inerse ErrSeatsBelowBooked döner.
	Update(ctx context.Context, event *models.Event) error
	Count(ctx context.Context) (int64, error)
	// DeleteWithDependents etkinliğin yorumlarını, rezervasyonlarını ve kendisini tek transaction'da siler.
	DeleteWithDependents(ctx context.Context, id uint) error
}

// EventRepository IEventRepository arayüzünü uygular.
type EventRepository struct {
	db *gorm.DB
}

var _ IEventRepository = (*EventRepository)(nil)

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository(db *gorm.DB) IEventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

const bookedSeatsSelect = "events.*, " +
	"COALESCE((SELECT SUM(bookings.quantity) FROM bookings WHERE bookings.event_id = events.id), 0) AS booked_seats"

// preloadEventWithSeats rezervasyon ve yorumlara eklenen etkinliklerin de koltuk toplamını taşımasını sağlar.
// Düz Preload("Event") booked_seats kolonunu seçmez.
func preloadEventWithSeats(db *gorm.DB) *gorm.DB {
	return db.Select(bookedSeatsSelect)
}

// withSeats koltuk toplamını da seçen temel sorguyu döndürür.
func (r *EventRepository) withSeats(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).Model(&models.Event{}).Select(bookedSeatsSelect)
}

// bookedSeats verilen bağlantı (transaction olabilir) üzerinden etkinliğin satılmış koltuklarını toplar.
func bookedSeats(tx *gorm.DB, eventID uint) (int, error) {
	var booked int64
	err := tx.Model(&models.Booking{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&booked).Error
	return int(booked), err
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.getDB(ctx).Create(event).Error; err != nil {
		configslog.Log.Error("EventRepository.Create: DB error", zap.String("name", event.Name), zap.Error(err))
		return err
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.withSeats(ctx).Where("events.id = ?", id).Take(&event).Error; err != nil {
		err = notFoundOr(err)
		if err != ErrNotFound {
			configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return &event, nil
}

// List filtrelere uyan etkinlikleri tarihe göre artan sırada getirir.
func (r *EventRepository) List(ctx context.Context, filter queryparams.EventFilter) ([]models.Event, error) {
	query := r.withSeats(ctx)

	if filter.Category != "" {
		query = query.Where("events.category = ?", filter.Category)
	}
	if start, end, ok := filter.DayRange(); ok {
		query = query.Where("events.event_date >= ? AND events.event_date < ?", start, end)
	}
	if filter.Venue != "" {
		query = query.Where("events.venue ILIKE ?", likePattern(filter.Venue))
	}
	if filter.MaxPrice != nil {
		query = query.Where("events.price <= ?", *filter.MaxPrice)
	}
	if filter.SearchTerm != "" {
		pattern := likePattern(filter.SearchTerm)
		query = query.Where("(events.name ILIKE ? OR events.description ILIKE ?)", pattern, pattern)
	}

	var events []models.Event
	if err := query.Order("events.event_date ASC, events.id ASC").Find(&events).Error; err != nil {
		configslog.Log.Error("EventRepository.List: DB error", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// ListUpcoming from anından sonraki en yakın etkinlikleri getirir.
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.withSeats(ctx).
		Where("events.event_date >= ?", from).
		Order("events.event_date ASC, events.id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.ListUpcoming: DB error", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// Categories filtre ekranı için tüm etkinliklerdeki farklı kategorileri döndürür.
func (r *EventRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.getDB(ctx).Model(&models.Event{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		configslog.Log.Error("EventRepository.Categories: DB error", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&current, event.ID).Error; err != nil {
			return notFoundOr(err)
		}

		booked, err := bookedSeats(tx, event.ID)
		if err != nil {
			return err
		}
		if event.TotalSeats < booked {
			return ErrSeatsBelowBooked
		}

		err = tx.Model(&models.Event{}).Where("id = ?", event.ID).Updates(map[string]interface{}{
			"name":        event.Name,
			"category":    event.Category,
			"event_date":  event.EventDate,
			"venue":       event.Venue,
			"price":       event.Price,
			"total_seats": event.TotalSeats,
			"description": event.Description,
			"updated_at":  time.Now(),
		}).Error
		if err != nil {
			configslog.Log.Error("EventRepository.Update: DB error", zap.Uint("id", event.ID), zap.Error(err))
			return err
		}

		event.CreatedAt = current.CreatedAt
		event.BookedSeats = booked
		return nil
	})
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Event{}).Count(&count).Error
	return count, err
}

func (r *EventRepository) DeleteWithDependents(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&event, id).Error; err != nil {
			return notFoundOr(err)
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			configslog.Log.Error("Etkinlik yorumları silinemedi", zap.Uint("event_id", id), zap.Error(err))
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			configslog.Log.Error("Etkinlik rezervasyonları silinemedi", zap.Uint("event_id", id), zap.Error(err))
			return err
		}
		if err := tx.Delete(&models.Event{}, id).Error; err != nil {
			configslog.Log.Error("Etkinlik silinemedi", zap.Uint("event_id", id), zap.Error(err))
			return err
		}
		return nil
	})
}
