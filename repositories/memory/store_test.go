package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, repos *repositories.Repositories, name string, seats int, at time.Time) *models.Event {
	t.Helper()
	desc := name + " açıklaması"
	e := &models.Event{
		Name:        name,
		Category:    "Müzik",
		EventDate:   at,
		Venue:       "Büyük Salon",
		Price:       100,
		TotalSeats:  seats,
		Description: &desc,
	}
	require.NoError(t, repos.Events.Create(context.Background(), e))
	return e
}

func seedMember(t *testing.T, repos *repositories.Repositories, email string, role models.Role) *models.Member {
	t.Helper()
	m := &models.Member{FullName: email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, repos.Members.Create(context.Background(), m))
	return m
}

func TestCreateWithinCapacity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	event := seedEvent(t, repos, "Konser", 5, time.Now().Add(24*time.Hour))
	member := seedMember(t, repos, "a@example.com", models.RoleMember)

	require.NoError(t, repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{
		MemberID: member.ID, EventID: event.ID, SeatType: models.SeatTypeStandard, Quantity: 3, BookingDate: time.Now(),
	}))

	err := repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{
		MemberID: member.ID, EventID: event.ID, SeatType: models.SeatTypeVIP, Quantity: 3, BookingDate: time.Now(),
	})
	require.ErrorIs(t, err, repositories.ErrInsufficientSeats)
	var seatsErr *repositories.InsufficientSeatsError
	require.True(t, errors.As(err, &seatsErr))
	assert.Equal(t, 2, seatsErr.Available)

	got, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.BookedSeats)
	assert.Equal(t, 2, got.AvailableSeats())
	assert.False(t, got.IsFull())

	err = repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{MemberID: member.ID, EventID: 999, Quantity: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreateWithinCapacityConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	event := seedEvent(t, repos, "Son Koltuklar", 10, time.Now().Add(time.Hour))
	member := seedMember(t, repos, "b@example.com", models.RoleMember)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{
				MemberID: member.ID, EventID: event.ID, SeatType: models.SeatTypeStandard, Quantity: 1, BookingDate: time.Now(),
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	got, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.BookedSeats)
	assert.True(t, got.IsFull())
}

func TestMemberDeleteWithDependents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	event := seedEvent(t, repos, "Sergi", 50, time.Now().Add(time.Hour))
	member := seedMember(t, repos, "c@example.com", models.RoleMember)
	admin := seedMember(t, repos, "admin@example.com", models.RoleAdmin)

	require.NoError(t, repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{MemberID: member.ID, EventID: event.ID, Quantity: 2, BookingDate: time.Now()}))
	require.NoError(t, repos.Reviews.Create(ctx, &models.Review{MemberID: member.ID, EventID: event.ID, Rating: 5, Comment: "Harika", ReviewDate: time.Now()}))

	withCounts, err := repos.Members.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, withCounts.BookingCount)
	assert.EqualValues(t, 1, withCounts.ReviewCount)

	assert.ErrorIs(t, repos.Members.DeleteWithDependents(ctx, admin.ID), repositories.ErrProtectedRecord)
	_, err = repos.Members.FindByID(ctx, admin.ID)
	assert.NoError(t, err)

	require.NoError(t, repos.Members.DeleteWithDependents(ctx, member.ID))
	_, err = repos.Members.FindByID(ctx, member.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	bookings, _ := repos.Bookings.Count(ctx)
	reviews, _ := repos.Reviews.Count(ctx)
	assert.Zero(t, bookings)
	assert.Zero(t, reviews)

	assert.ErrorIs(t, repos.Members.DeleteWithDependents(ctx, member.ID), repositories.ErrNotFound)
}

func TestEventDeleteWithDependents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	keep := seedEvent(t, repos, "Kalacak", 10, time.Now().Add(time.Hour))
	drop := seedEvent(t, repos, "Silinecek", 10, time.Now().Add(2*time.Hour))
	member := seedMember(t, repos, "d@example.com", models.RoleMember)

	for _, e := range []*models.Event{keep, drop} {
		require.NoError(t, repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{MemberID: member.ID, EventID: e.ID, Quantity: 1, BookingDate: time.Now()}))
		require.NoError(t, repos.Reviews.Create(ctx, &models.Review{MemberID: member.ID, EventID: e.ID, Rating: 4, Comment: "İyi", ReviewDate: time.Now()}))
	}

	require.NoError(t, repos.Events.DeleteWithDependents(ctx, drop.ID))

	bookings, err := repos.Bookings.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, keep.ID, bookings[0].EventID)

	reviews, err := repos.Reviews.ListByEvent(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestEventUpdateRejectsSeatsBelowBooked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	event := seedEvent(t, repos, "Tiyatro", 10, time.Now().Add(time.Hour))
	member := seedMember(t, repos, "e@example.com", models.RoleMember)
	require.NoError(t, repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{MemberID: member.ID, EventID: event.ID, Quantity: 6, BookingDate: time.Now()}))

	event.TotalSeats = 5
	assert.ErrorIs(t, repos.Events.Update(ctx, event), repositories.ErrSeatsBelowBooked)

	event.TotalSeats = 6
	require.NoError(t, repos.Events.Update(ctx, event))
	got, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFull())
}

func TestEventListFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	day := time.Date(2030, 6, 15, 19, 30, 0, 0, time.Local)

	jazz := seedEvent(t, repos, "Caz Gecesi", 100, day)
	poetry := &models.Event{Name: "Şiir Akşamı", Category: "Edebiyat", EventDate: day.AddDate(0, 0, 1), Venue: "Kütüphane", Price: 0, TotalSeats: 30}
	require.NoError(t, repos.Events.Create(ctx, poetry))

	maxPrice := 50.0
	dayStart := time.Date(2030, 6, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		filter queryparams.EventFilter
		want   []uint
	}{
		{"filtresiz tarih sıralı", queryparams.EventFilter{}, []uint{jazz.ID, poetry.ID}},
		{"kategori", queryparams.EventFilter{Category: "Edebiyat"}, []uint{poetry.ID}},
		{"aynı gün", queryparams.EventFilter{Date: &dayStart}, []uint{jazz.ID}},
		{"mekan büyük/küçük harf duyarsız", queryparams.EventFilter{Venue: "salon"}, []uint{jazz.ID}},
		{"azami fiyat", queryparams.EventFilter{MaxPrice: &maxPrice}, []uint{poetry.ID}},
		{"açıklamada arama", queryparams.EventFilter{SearchTerm: "Açıklaması"}, []uint{jazz.ID}},
		{"birleşik filtre eşleşmez", queryparams.EventFilter{Category: "Müzik", MaxPrice: &maxPrice}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repos.Events.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]uint, 0, len(events))
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	categories, err := repos.Events.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Edebiyat", "Müzik"}, categories)
}

func TestCreateRejectsDeletedMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	event := seedEvent(t, repos, "Söyleşi", 10, time.Now().Add(time.Hour))
	member := seedMember(t, repos, "silinen@example.com", models.RoleMember)
	require.NoError(t, repos.Members.DeleteWithDependents(ctx, member.ID))

	err := repos.Bookings.CreateWithinCapacity(ctx, &models.Booking{
		MemberID: member.ID, EventID: event.ID, SeatType: models.SeatTypeStandard, Quantity: 2, BookingDate: time.Now(),
	})
	assert.ErrorIs(t, err, repositories.ErrMemberNotFound)

	err = repos.Reviews.Create(ctx, &models.Review{MemberID: member.ID, EventID: event.ID, Rating: 4, Comment: "Güzel", ReviewDate: time.Now()})
	assert.ErrorIs(t, err, repositories.ErrMemberNotFound)

	bookings, err := repos.Bookings.List(ctx, queryparams.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	got, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.BookedSeats)
}

func TestReviewOwnershipAndUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repos := New()
	event := seedEvent(t, repos, "Film", 10, time.Now().Add(time.Hour))
	owner := seedMember(t, repos, "f@example.com", models.RoleMember)
	other := seedMember(t, repos, "g@example.com", models.RoleMember)

	review := &models.Review{MemberID: owner.ID, EventID: event.ID, Rating: 3, Comment: "Fena değil", ReviewDate: time.Now()}
	require.NoError(t, repos.Reviews.Create(ctx, review))
	assert.ErrorIs(t, repos.Reviews.Create(ctx, &models.Review{MemberID: owner.ID, EventID: event.ID, Rating: 5, Comment: "x"}), repositories.ErrDuplicate)

	_, err := repos.Reviews.FindOwned(ctx, review.ID, other.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repos.Reviews.DeleteOwned(ctx, review.ID, other.ID), repositories.ErrNotFound)

	require.NoError(t, repos.Reviews.UpdateContent(ctx, &models.Review{BaseModel: models.BaseModel{ID: review.ID}, MemberID: owner.ID, Rating: 5, Comment: "Çok iyi"}))
	got, err := repos.Reviews.FindOwned(ctx, review.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "Çok iyi", got.Comment)
	assert.Equal(t, event.ID, got.Event.ID)
}
