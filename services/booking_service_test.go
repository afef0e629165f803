package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingCapacity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	member := f.member(t, "bilet@example.com")
	event := f.event(t, "Photography Workshop", 10, time.Now().AddDate(0, 1, 0))

	f.book(t, member, event.ID, 7)

	_, err := f.svc.Bookings.CreateBooking(ctx, member, BookingInput{EventID: event.ID, SeatType: "VIP", Quantity: 4})
	require.ErrorIs(t, err, ErrInsufficientSeats)
	var seatsErr *InsufficientSeatsError
	require.True(t, errors.As(err, &seatsErr))
	assert.Equal(t, 3, seatsErr.Available)

	f.book(t, member, event.ID, 3)

	got, err := f.svc.Events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.BookedSeats)
	assert.True(t, got.IsFull())

	_, err = f.svc.Bookings.CreateBooking(ctx, member, BookingInput{EventID: event.ID, SeatType: "Standard", Quantity: 1})
	require.True(t, errors.As(err, &seatsErr))
	assert.Equal(t, 0, seatsErr.Available)
}

func TestCreateBookingForDeletedMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	member := f.member(t, "gecici@example.com")
	event := f.event(t, "Poetry Evening", 20, time.Now().AddDate(0, 1, 0))
	require.NoError(t, f.repos.Members.DeleteWithDependents(ctx, member.MemberID))

	_, err := f.svc.Bookings.CreateBooking(ctx, member, BookingInput{EventID: event.ID, SeatType: models.SeatTypeStandard, Quantity: 1})
	require.ErrorIs(t, err, ErrMemberNotFound)

	got, err := f.svc.Events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.BookedSeats)
}

func TestCreateBookingValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	member := f.member(t, "form@example.com")
	event := f.event(t, "Jazz Night Live", 150, time.Now().AddDate(0, 1, 0))

	tests := []struct {
		name      string
		input     BookingInput
		wantField string
		wantErr   error
	}{
		{name: "zero quantity", input: BookingInput{EventID: event.ID, SeatType: "Standard", Quantity: 0}, wantField: "quantity"},
		{name: "quantity above ten", input: BookingInput{EventID: event.ID, SeatType: "Standard", Quantity: 11}, wantField: "quantity"},
		{name: "blank seat type", input: BookingInput{EventID: event.ID, SeatType: "   ", Quantity: 1}, wantField: "seat_type"},
		{name: "unknown event", input: BookingInput{EventID: 9999, SeatType: "Standard", Quantity: 1}, wantErr: ErrEventNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Bookings.CreateBooking(context.Background(), member, tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			verrs, ok := formvalidation.AsValidationErrors(err)
			require.True(t, ok)
			assert.Contains(t, verrs, tt.wantField)
		})
	}
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	event := f.event(t, "Shakespeare's Hamlet", 20, time.Now().AddDate(0, 2, 0))

	members := make([]models.Identity, 8)
	for i := range members {
		members[i] = f.member(t, string(rune('a'+i))+"@example.com")
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.Bookings.CreateBooking(ctx, members[i%len(members)], BookingInput{EventID: event.ID, SeatType: "Standard", Quantity: 3})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	got, err := f.svc.Events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, accepted)
	assert.Equal(t, 18, got.BookedSeats)
	assert.Equal(t, 2, got.AvailableSeats())
}

func TestBookingOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	owner := f.member(t, "sahip@example.com")
	other := f.member(t, "diger@example.com")
	event := f.event(t, "Cultural Dance Festival", 400, time.Now().AddDate(0, 1, 0))
	booking := f.book(t, owner, event.ID, 2)

	_, err := f.svc.Bookings.GetOwnBooking(ctx, other, booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, f.svc.Bookings.CancelBooking(ctx, other, booking.ID), ErrBookingNotFound)

	got, err := f.svc.Bookings.GetOwnBooking(ctx, owner, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Event)
	assert.Equal(t, event.Name, got.Event.Name)

	require.NoError(t, f.svc.Bookings.CancelBooking(ctx, owner, booking.ID))
	own, err := f.svc.Bookings.ListOwnBookings(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, own)

	freed, err := f.svc.Events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, freed.BookedSeats)
}

func TestListBookingsFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.admin(t)
	ayse := f.member(t, "ayse@example.com")
	mehmet := f.member(t, "mehmet@example.com")
	concert := f.event(t, "Konser", 100, time.Now().AddDate(0, 1, 0))
	play := f.event(t, "Oyun", 100, time.Now().AddDate(0, 2, 0))

	f.book(t, ayse, concert.ID, 1)
	f.book(t, ayse, play.ID, 2)
	f.book(t, mehmet, concert.ID, 3)

	uintPtr := func(v uint) *uint { return &v }
	tests := []struct {
		name   string
		filter queryparams.BookingFilter
		want   int
	}{
		{name: "no filter", want: 3},
		{name: "by event", filter: queryparams.BookingFilter{EventID: uintPtr(concert.ID)}, want: 2},
		{name: "by member", filter: queryparams.BookingFilter{MemberID: uintPtr(ayse.MemberID)}, want: 2},
		{name: "both", filter: queryparams.BookingFilter{EventID: uintPtr(concert.ID), MemberID: uintPtr(mehmet.MemberID)}, want: 1},
		{name: "unknown event", filter: queryparams.BookingFilter{EventID: uintPtr(999)}, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			listing, err := f.svc.Bookings.ListBookings(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, listing.Bookings, tt.want)
			assert.Len(t, listing.Events, 2)
			// Filtre seçeneklerinde yöneticiler yer almaz
			assert.Len(t, listing.Members, 2)
			for _, b := range listing.Bookings {
				assert.NotNil(t, b.Member)
				assert.NotNil(t, b.Event)
			}
		})
	}
}
