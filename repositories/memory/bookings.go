package memory

import (
	"context"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"
)

type bookingRepository struct {
	s *Store
}

var _ repositories.IBookingRepository = (*bookingRepository)(nil)

func (r *bookingRepository) CreateWithinCapacity(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event, ok := r.s.events[booking.EventID]
	if !ok {
		return repositories.ErrNotFound
	}
	if _, ok := r.s.members[booking.MemberID]; !ok {
		return repositories.ErrMemberNotFound
	}
	available := event.TotalSeats - r.s.bookedSeats(booking.EventID)
	if booking.Quantity > available {
		if available < 0 {
			available = 0
		}
		return &repositories.InsufficientSeatsError{Available: available}
	}

	r.s.stamp("bookings", &booking.BaseModel)
	stored := *booking
	stored.Member, stored.Event = nil, nil
	r.s.bookings[booking.ID] = stored
	return nil
}

func (r *bookingRepository) FindOwned(_ context.Context, id, memberID uint) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok || b.MemberID != memberID {
		return nil, repositories.ErrNotFound
	}
	b = r.s.withBookingRelations(b)
	b.Member = nil
	return &b, nil
}

func (r *bookingRepository) ListByMember(_ context.Context, memberID uint) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bookings := make([]models.Booking, 0)
	for _, b := range r.s.bookings {
		if b.MemberID != memberID {
			continue
		}
		b = r.s.withBookingRelations(b)
		b.Member = nil
		bookings = append(bookings, b)
	}
	newestFirst(bookings, bookingKey)
	return bookings, nil
}

func (r *bookingRepository) List(_ context.Context, filter queryparams.BookingFilter) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bookings := make([]models.Booking, 0)
	for _, b := range r.s.bookings {
		if filter.EventID != nil && b.EventID != *filter.EventID {
			continue
		}
		if filter.MemberID != nil && b.MemberID != *filter.MemberID {
			continue
		}
		bookings = append(bookings, r.s.withBookingRelations(b))
	}
	newestFirst(bookings, bookingKey)
	return bookings, nil
}

func (r *bookingRepository) DeleteOwned(_ context.Context, id, memberID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok || b.MemberID != memberID {
		return repositories.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *bookingRepository) ExistsForMemberEvent(_ context.Context, memberID, eventID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookings {
		if b.MemberID == memberID && b.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.bookings)), nil
}

func bookingKey(b models.Booking) (time.Time, uint) {
	return b.BookingDate, b.ID
}
