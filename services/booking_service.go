package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/metrics" // Rezervasyon sayaçları için
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// BookingServiceError rezervasyon servisinin hatalarıdır.
type BookingServiceError string

func (e BookingServiceError) Error() string { return string(e) }

const (
	ErrBookingNotFound BookingServiceError = "rezervasyon bulunamadı"
)

// Koltuk yetersizliği depo katmanında belirlenir; kalan koltuk sayısını taşır.
type InsufficientSeatsError = repositories.InsufficientSeatsError

var ErrInsufficientSeats = repositories.ErrInsufficientSeats

// BookingInput rezervasyon formudur.
type BookingInput struct {
	EventID  uint   `form:"event_id" json:"event_id" validate:"required"`
	SeatType string `form:"seat_type" json:"seat_type" validate:"required,max=20"`
	Quantity int    `form:"quantity" json:"quantity" validate:"gte=1,lte=10"`
}

// BookingForm rezervasyon formu ekranının verisidir.
type BookingForm struct {
	Event *models.Event `json:"event"`
	Input BookingInput  `json:"input"`
}

// AdminBookingListing yönetici rezervasyon listesinin verisidir; filtre seçenekleri de dahildir.
type AdminBookingListing struct {
	Bookings []models.Booking          `json:"bookings"`
	Events   []models.Event            `json:"events"`
	Members  []models.Member           `json:"members"`
	Filter   queryparams.BookingFilter `json:"filter"`
}

type IBookingService interface {
	PrepareBooking(ctx context.Context, eventID uint) (*BookingForm, error)
	CreateBooking(ctx context.Context, identity models.Identity, input BookingInput) (*models.Booking, error)
	ListOwnBookings(ctx context.Context, identity models.Identity) ([]models.Booking, error)
	GetOwnBooking(ctx context.Context, identity models.Identity, id uint) (*models.Booking, error)
	CancelBooking(ctx context.Context, identity models.Identity, id uint) error
	ListBookings(ctx context.Context, filter queryparams.BookingFilter) (*AdminBookingListing, error)
}

type BookingService struct {
	bookings repositories.IBookingRepository
	events   repositories.IEventRepository
	members  repositories.IMemberRepository
	now      func() time.Time
}

// NewBookingService yeni bir BookingService örneği oluşturur (DI ile).
func NewBookingService(repos *repositories.Repositories) IBookingService {
	return &BookingService{
		bookings: repos.Bookings,
		events:   repos.Events,
		members:  repos.Members,
		now:      time.Now,
	}
}

// PrepareBooking formu varsayılan koltuk türü ve tek bilet ile doldurur.
func (s *BookingService) PrepareBooking(ctx context.Context, eventID uint) (*BookingForm, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &BookingForm{
		Event: event,
		Input: BookingInput{EventID: eventID, SeatType: models.SeatTypeStandard, Quantity: 1},
	}, nil
}

func (s *BookingService) findEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	if eventID == 0 {
		return nil, ErrEventNotFound
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// CreateBooking girdiyi doğrular, ardından kapasite kontrolü ve kaydı depoya tek adımda yaptırır.
func (s *BookingService) CreateBooking(ctx context.Context, identity models.Identity, input BookingInput) (*models.Booking, error) {
	input.SeatType = strings.TrimSpace(input.SeatType)
	if err := formvalidation.Struct(input); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		MemberID:    identity.MemberID,
		EventID:     input.EventID,
		SeatType:    input.SeatType,
		Quantity:    input.Quantity,
		BookingDate: s.now(),
	}

	if err := s.bookings.CreateWithinCapacity(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrMemberNotFound):
			configslog.Log.Warn("Silinmiş üye adına rezervasyon denendi", zap.Uint("member_id", identity.MemberID))
			return nil, ErrMemberNotFound
		case errors.Is(err, ErrInsufficientSeats):
			metrics.BookingsRejected.Inc()
			configslog.Log.Info("Rezervasyon koltuk yetersizliği nedeniyle reddedildi",
				zap.Uint("event_id", input.EventID), zap.Int("quantity", input.Quantity), zap.Error(err))
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	metrics.SeatsBooked.Add(float64(booking.Quantity))
	configslog.Log.Info("Rezervasyon oluşturuldu",
		zap.Uint("booking_id", booking.ID), zap.Uint("event_id", booking.EventID),
		zap.Uint("member_id", booking.MemberID), zap.Int("quantity", booking.Quantity))
	return booking, nil
}

func (s *BookingService) ListOwnBookings(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	return s.bookings.ListByMember(ctx, identity.MemberID)
}

// GetOwnBooking başka üyeye ait rezervasyonlar için de ErrBookingNotFound döner.
func (s *BookingService) GetOwnBooking(ctx context.Context, identity models.Identity, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindOwned(ctx, id, identity.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, identity models.Identity, id uint) error {
	if err := s.bookings.DeleteOwned(ctx, id, identity.MemberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	metrics.BookingsCancelled.Inc()
	configslog.Log.Info("Rezervasyon iptal edildi", zap.Uint("booking_id", id), zap.Uint("member_id", identity.MemberID))
	return nil
}

func (s *BookingService) ListBookings(ctx context.Context, filter queryparams.BookingFilter) (*AdminBookingListing, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, queryparams.EventFilter{})
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListByRole(ctx, models.RoleMember)
	if err != nil {
		return nil, err
	}
	return &AdminBookingListing{Bookings: bookings, Events: events, Members: members, Filter: filter}, nil
}
