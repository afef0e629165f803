// Package memory repositories paketindeki arayüzlerin süreç içi uygulamasıdır.
// STORAGE_DRIVER=memory ile yerel çalıştırmada ve testlerde kullanılır.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/repositories"
)

// Store tüm tabloları tek bir kilit altında tutar. Tek kilit, rezervasyonda
// kapasite kontrolü ile kaydın aynı kritik bölgede yapılmasını sağlar.
type Store struct {
	mu sync.RWMutex

	members   map[uint]models.Member
	events    map[uint]models.Event
	bookings  map[uint]models.Booking
	reviews   map[uint]models.Review
	inquiries map[uint]models.Inquiry

	nextID map[string]uint
	now    func() time.Time
}

// NewStore boş bir depo oluşturur.
func NewStore() *Store {
	return &Store{
		members:   make(map[uint]models.Member),
		events:    make(map[uint]models.Event),
		bookings:  make(map[uint]models.Booking),
		reviews:   make(map[uint]models.Review),
		inquiries: make(map[uint]models.Inquiry),
		nextID:    make(map[string]uint),
		now:       time.Now,
	}
}

// New bellek içi depoları Repositories olarak döndürür.
func New() *repositories.Repositories {
	return NewStore().Repositories()
}

// Repositories bu Store üzerinde çalışan depo kümesini döndürür.
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Members:   &memberRepository{s: s},
		Events:    &eventRepository{s: s},
		Bookings:  &bookingRepository{s: s},
		Reviews:   &reviewRepository{s: s},
		Inquiries: &inquiryRepository{s: s},
	}
}

// stamp yeni kayda kimlik ve zaman damgası atar. Çağıran yazma kilidini tutmalıdır.
func (s *Store) stamp(table string, base *models.BaseModel) {
	s.nextID[table]++
	base.ID = s.nextID[table]
	now := s.now()
	base.CreatedAt = now
	base.UpdatedAt = now
}

// bookedSeats çağıran en az okuma kilidini tutmalıdır.
func (s *Store) bookedSeats(eventID uint) int {
	total := 0
	for _, b := range s.bookings {
		if b.EventID == eventID {
			total += b.Quantity
		}
	}
	return total
}

func (s *Store) eventWithSeats(id uint) (models.Event, bool) {
	event, ok := s.events[id]
	if !ok {
		return models.Event{}, false
	}
	event.BookedSeats = s.bookedSeats(id)
	return event, true
}

func (s *Store) memberWithCounts(id uint) (models.Member, bool) {
	member, ok := s.members[id]
	if !ok {
		return models.Member{}, false
	}
	member.BookingCount, member.ReviewCount = 0, 0
	for _, b := range s.bookings {
		if b.MemberID == id {
			member.BookingCount++
		}
	}
	for _, r := range s.reviews {
		if r.MemberID == id {
			member.ReviewCount++
		}
	}
	return member, true
}

func (s *Store) withBookingRelations(b models.Booking) models.Booking {
	if event, ok := s.eventWithSeats(b.EventID); ok {
		b.Event = &event
	}
	if member, ok := s.members[b.MemberID]; ok {
		b.Member = &member
	}
	return b
}

func (s *Store) withReviewRelations(r models.Review) models.Review {
	if event, ok := s.eventWithSeats(r.EventID); ok {
		r.Event = &event
	}
	if member, ok := s.members[r.MemberID]; ok {
		r.Member = &member
	}
	return r
}

// containsFold ILIKE '%term%' karşılığıdır.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// newestFirst tarih azalan, eşitlikte ID azalan sıralama yapar.
func newestFirst[T any](items []T, key func(T) (time.Time, uint)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}
