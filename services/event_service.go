package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// EventServiceError etkinlik servisinin hatalarıdır.
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound EventServiceError = "etkinlik bulunamadı"
)

// EventDateLayouts form ve JSON girdilerinde kabul edilen tarih biçimleridir.
var EventDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

// EventInput yönetici etkinlik formudur.
type EventInput struct {
	Name        string  `form:"name" json:"name" validate:"required,max=200"`
	Category    string  `form:"category" json:"category" validate:"required,max=50"`
	EventDate   string  `form:"event_date" json:"event_date" validate:"required"`
	Venue       string  `form:"venue" json:"venue" validate:"required,max=200"`
	Price       float64 `form:"price" json:"price" validate:"gte=0,lte=10000"`
	TotalSeats  int     `form:"total_seats" json:"total_seats" validate:"gte=1,lte=10000"`
	Description string  `form:"description" json:"description" validate:"max=1000"`
}

// EventInputFrom düzenleme formunu mevcut kayıtla doldurur.
func EventInputFrom(e *models.Event) EventInput {
	input := EventInput{
		Name:       e.Name,
		Category:   e.Category,
		EventDate:  e.EventDate.In(time.Local).Format(EventDateLayouts[0]),
		Venue:      e.Venue,
		Price:      e.Price,
		TotalSeats: e.TotalSeats,
	}
	if e.Description != nil {
		input.Description = *e.Description
	}
	return input
}

// toModel alanları doğrular ve modeli üretir. Tarih hatası da alan hatası olarak döner.
func (in EventInput) toModel() (*models.Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Venue = strings.TrimSpace(in.Venue)

	verrs := formvalidation.ValidationErrors{}
	if err := formvalidation.Struct(in); err != nil {
		fieldErrs, ok := formvalidation.AsValidationErrors(err)
		if !ok {
			return nil, err
		}
		verrs = fieldErrs
	}

	var eventDate time.Time
	if in.EventDate != "" {
		parsed, ok := parseEventDate(in.EventDate)
		if !ok {
			verrs.Add("event_date", "Geçerli bir tarih giriniz.")
		}
		eventDate = parsed
	}
	if err := verrs.Err(); err != nil {
		return nil, err
	}

	return &models.Event{
		Name:        in.Name,
		Category:    in.Category,
		EventDate:   eventDate,
		Venue:       in.Venue,
		Price:       in.Price,
		TotalSeats:  in.TotalSeats,
		Description: optionalString(in.Description),
	}, nil
}

func parseEventDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range EventDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventListing etkinlik listesi ekranının verisidir.
type EventListing struct {
	Events     []models.Event          `json:"events"`
	Categories []string                `json:"categories"`
	Filter     queryparams.EventFilter `json:"filter"`
}

// EventDetail etkinlik detay ekranının verisidir.
type EventDetail struct {
	Event         *models.Event   `json:"event"`
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	HasBooked     bool            `json:"has_booked"`
	HasReviewed   bool            `json:"has_reviewed"`
}

type IEventService interface {
	ListEvents(ctx context.Context, filter queryparams.EventFilter) (*EventListing, error)
	GetEventDetail(ctx context.Context, id uint, identity *models.Identity) (*EventDetail, error)
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]models.Event, error)
	CreateEvent(ctx context.Context, input EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id uint, input EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type EventService struct {
	events   repositories.IEventRepository
	bookings repositories.IBookingRepository
	reviews  repositories.IReviewRepository
	now      func() time.Time
}

// NewEventService yeni bir EventService örneği oluşturur (DI ile).
func NewEventService(repos *repositories.Repositories) IEventService {
	return &EventService{
		events:   repos.Events,
		bookings: repos.Bookings,
		reviews:  repos.Reviews,
		now:      time.Now,
	}
}

func (s *EventService) ListEvents(ctx context.Context, filter queryparams.EventFilter) (*EventListing, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.events.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &EventListing{Events: events, Categories: categories, Filter: filter}, nil
}

// GetEventDetail misafir için identity nil olabilir; bu durumda HasBooked ve HasReviewed false kalır.
func (s *EventService) GetEventDetail(ctx context.Context, id uint, identity *models.Identity) (*EventDetail, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &EventDetail{Event: event, Reviews: reviews}
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		detail.AverageRating = float64(total) / float64(len(reviews))
	}

	if identity != nil {
		if detail.HasBooked, err = s.bookings.ExistsForMemberEvent(ctx, identity.MemberID, id); err != nil {
			return nil, err
		}
		if detail.HasReviewed, err = s.reviews.ExistsForMemberEvent(ctx, identity.MemberID, id); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListUpcoming şu andan sonraki en yakın etkinlikleri döndürür.
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	return s.events.ListUpcoming(ctx, s.now(), limit)
}

func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (*models.Event, error) {
	event, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	configslog.Log.Info("Etkinlik oluşturuldu", zap.Uint("event_id", event.ID), zap.String("name", event.Name))
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint, input EventInput) (*models.Event, error) {
	event, err := input.toModel()
	if err != nil {
		return nil, err
	}
	event.ID = id

	if err := s.events.Update(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrSeatsBelowBooked):
			return nil, formvalidation.ValidationErrors{
				"total_seats": "Toplam koltuk sayısı satılmış koltuk sayısının altına indirilemez.",
			}
		}
		return nil, err
	}
	configslog.Log.Info("Etkinlik güncellendi", zap.Uint("event_id", id))
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.events.DeleteWithDependents(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	configslog.Log.Info("Etkinlik ve bağlı kayıtları silindi", zap.Uint("event_id", id))
	return nil
}
