package memory

import (
	"context"
	"sort"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"
)

type eventRepository struct {
	s *Store
}

var _ repositories.IEventRepository = (*eventRepository)(nil)

func (r *eventRepository) Create(_ context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp("events", &event.BaseModel)
	stored := *event
	stored.BookedSeats = 0
	r.s.events[event.ID] = stored
	event.BookedSeats = 0
	return nil
}

func (r *eventRepository) FindByID(_ context.Context, id uint) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	event, ok := r.s.eventWithSeats(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &event, nil
}

func (r *eventRepository) List(_ context.Context, filter queryparams.EventFilter) ([]models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	start, end, byDay := filter.DayRange()
	events := make([]models.Event, 0)
	for id := range r.s.events {
		e, _ := r.s.eventWithSeats(id)
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if byDay && (e.EventDate.Before(start) || !e.EventDate.Before(end)) {
			continue
		}
		if filter.Venue != "" && !containsFold(e.Venue, filter.Venue) {
			continue
		}
		if filter.MaxPrice != nil && e.Price > *filter.MaxPrice {
			continue
		}
		if filter.SearchTerm != "" {
			inDescription := e.Description != nil && containsFold(*e.Description, filter.SearchTerm)
			if !containsFold(e.Name, filter.SearchTerm) && !inDescription {
				continue
			}
		}
		events = append(events, e)
	}
	sortByDate(events)
	return events, nil
}

func (r *eventRepository) ListUpcoming(_ context.Context, from time.Time, limit int) ([]models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := make([]models.Event, 0)
	for id, e := range r.s.events {
		if e.EventDate.Before(from) {
			continue
		}
		withSeats, _ := r.s.eventWithSeats(id)
		events = append(events, withSeats)
	}
	sortByDate(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *eventRepository) Categories(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, e := range r.s.events {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *eventRepository) Update(_ context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.events[event.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	booked := r.s.bookedSeats(event.ID)
	if event.TotalSeats < booked {
		return repositories.ErrSeatsBelowBooked
	}

	current.Name = event.Name
	current.Category = event.Category
	current.EventDate = event.EventDate
	current.Venue = event.Venue
	current.Price = event.Price
	current.TotalSeats = event.TotalSeats
	current.Description = event.Description
	current.UpdatedAt = r.s.now()
	r.s.events[event.ID] = current

	event.CreatedAt = current.CreatedAt
	event.UpdatedAt = current.UpdatedAt
	event.BookedSeats = booked
	return nil
}

func (r *eventRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.events)), nil
}

func (r *eventRepository) DeleteWithDependents(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return repositories.ErrNotFound
	}
	for reviewID, rv := range r.s.reviews {
		if rv.EventID == id {
			delete(r.s.reviews, reviewID)
		}
	}
	for bookingID, b := range r.s.bookings {
		if b.EventID == id {
			delete(r.s.bookings, bookingID)
		}
	}
	delete(r.s.events, id)
	return nil
}

func sortByDate(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].ID < events[j].ID
	})
}
