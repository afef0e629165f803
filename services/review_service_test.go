package services

import (
	"context"
	"testing"
	"time"

	"etkinlik.link/pkg/formvalidation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewEligibility(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	booked := f.member(t, "izleyici@example.com")
	stranger := f.member(t, "yabanci@example.com")
	event := f.event(t, "Metropolitan Orchestra: Symphony Night", 500, time.Now().AddDate(0, 1, 0))
	f.book(t, booked, event.ID, 2)

	_, err := f.svc.Reviews.PrepareReview(ctx, stranger, event.ID)
	assert.ErrorIs(t, err, ErrReviewNotEligible)
	_, err = f.svc.Reviews.CreateReview(ctx, stranger, ReviewInput{EventID: event.ID, Rating: 5, Comment: "Harika"})
	assert.ErrorIs(t, err, ErrReviewNotEligible)

	_, err = f.svc.Reviews.PrepareReview(ctx, booked, 9999)
	assert.ErrorIs(t, err, ErrEventNotFound)

	form, err := f.svc.Reviews.PrepareReview(ctx, booked, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, form.Input.Rating)
	assert.Equal(t, event.ID, form.Event.ID)

	review, err := f.svc.Reviews.CreateReview(ctx, booked, ReviewInput{EventID: event.ID, Rating: 4, Comment: "  Çok güzeldi  "})
	require.NoError(t, err)
	assert.Equal(t, "Çok güzeldi", review.Comment)

	_, err = f.svc.Reviews.PrepareReview(ctx, booked, event.ID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	_, err = f.svc.Reviews.CreateReview(ctx, booked, ReviewInput{EventID: event.ID, Rating: 3, Comment: "Tekrar"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	detail, err := f.svc.Events.GetEventDetail(ctx, event.ID, &booked)
	require.NoError(t, err)
	assert.True(t, detail.HasBooked)
	assert.True(t, detail.HasReviewed)
	assert.InDelta(t, 4.0, detail.AverageRating, 0.001)
	require.Len(t, detail.Reviews, 1)
	require.NotNil(t, detail.Reviews[0].Member)
}

func TestCreateReviewValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	member := f.member(t, "puan@example.com")
	event := f.event(t, "Contemporary Art Exhibition", 200, time.Now().AddDate(0, 1, 0))
	f.book(t, member, event.ID, 1)

	tests := []struct {
		name      string
		input     ReviewInput
		wantField string
	}{
		{name: "rating zero", input: ReviewInput{EventID: event.ID, Rating: 0, Comment: "iyi"}, wantField: "rating"},
		{name: "rating six", input: ReviewInput{EventID: event.ID, Rating: 6, Comment: "iyi"}, wantField: "rating"},
		{name: "blank comment", input: ReviewInput{EventID: event.ID, Rating: 3, Comment: "   "}, wantField: "comment"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Reviews.CreateReview(context.Background(), member, tt.input)
			verrs, ok := formvalidation.AsValidationErrors(err)
			require.True(t, ok, "doğrulama hatası bekleniyordu: %v", err)
			assert.Contains(t, verrs, tt.wantField)
		})
	}
}

func TestEditAndDeleteReviewOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	owner := f.member(t, "yazar@example.com")
	other := f.member(t, "okur@example.com")
	event := f.event(t, "Jazz Night Live", 150, time.Now().AddDate(0, 1, 0))
	f.book(t, owner, event.ID, 1)
	review, err := f.svc.Reviews.CreateReview(ctx, owner, ReviewInput{EventID: event.ID, Rating: 2, Comment: "Ses kötüydü"})
	require.NoError(t, err)

	_, err = f.svc.Reviews.GetOwnReview(ctx, other, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	_, err = f.svc.Reviews.EditReview(ctx, other, review.ID, ReviewInput{Rating: 5, Comment: "Sahte"})
	assert.ErrorIs(t, err, ErrReviewNotFound)
	_, err = f.svc.Reviews.DeleteReview(ctx, other, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	// Gövdedeki event_id yok sayılır, yorum kendi etkinliğinde kalır
	edited, err := f.svc.Reviews.EditReview(ctx, owner, review.ID, ReviewInput{EventID: 9999, Rating: 5, Comment: "İkinci yarı çok iyiydi"})
	require.NoError(t, err)
	assert.Equal(t, event.ID, edited.EventID)
	assert.Equal(t, 5, edited.Rating)

	form, err := f.svc.Reviews.GetOwnReview(ctx, owner, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "İkinci yarı çok iyiydi", form.Input.Comment)

	eventID, err := f.svc.Reviews.DeleteReview(ctx, owner, review.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, eventID)

	// Silindikten sonra yeniden değerlendirme yapılabilir
	_, err = f.svc.Reviews.PrepareReview(ctx, owner, event.ID)
	assert.NoError(t, err)
}
