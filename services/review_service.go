package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// ReviewServiceError yorum servisinin hatalarıdır.
type ReviewServiceError string

func (e ReviewServiceError) Error() string { return string(e) }

const (
	ErrReviewNotFound    ReviewServiceError = "yorum bulunamadı"
	ErrReviewNotEligible ReviewServiceError = "yalnızca bilet aldığınız etkinlikleri değerlendirebilirsiniz"
	ErrAlreadyReviewed   ReviewServiceError = "bu etkinliği zaten değerlendirdiniz"
)

// ReviewInput yorum formudur. EventID düzenlemede yok sayılır.
type ReviewInput struct {
	EventID uint   `form:"event_id" json:"event_id"`
	Rating  int    `form:"rating" json:"rating" validate:"gte=1,lte=5"`
	Comment string `form:"comment" json:"comment" validate:"required,max=500"`
}

// ReviewForm yorum formu ve onay ekranlarının verisidir.
type ReviewForm struct {
	Event  *models.Event  `json:"event"`
	Review *models.Review `json:"review,omitempty"`
	Input  ReviewInput    `json:"input"`
}

type IReviewService interface {
	PrepareReview(ctx context.Context, identity models.Identity, eventID uint) (*ReviewForm, error)
	CreateReview(ctx context.Context, identity models.Identity, input ReviewInput) (*models.Review, error)
	GetOwnReview(ctx context.Context, identity models.Identity, id uint) (*ReviewForm, error)
	EditReview(ctx context.Context, identity models.Identity, id uint, input ReviewInput) (*models.Review, error)
	// DeleteReview yönlendirme için yorumun ait olduğu etkinliğin kimliğini döndürür.
	DeleteReview(ctx context.Context, identity models.Identity, id uint) (uint, error)
}

type ReviewService struct {
	reviews  repositories.IReviewRepository
	bookings repositories.IBookingRepository
	events   repositories.IEventRepository
	now      func() time.Time
}

// NewReviewService yeni bir ReviewService örneği oluşturur.
func NewReviewService(repos *repositories.Repositories) IReviewService {
	return &ReviewService{
		reviews:  repos.Reviews,
		bookings: repos.Bookings,
		events:   repos.Events,
		now:      time.Now,
	}
}

// checkEligibility sırasıyla etkinliğin varlığını, üyenin rezervasyonunu ve önceki yorumu kontrol eder.
func (s *ReviewService) checkEligibility(ctx context.Context, identity models.Identity, eventID uint) (*models.Event, error) {
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

	booked, err := s.bookings.ExistsForMemberEvent(ctx, identity.MemberID, eventID)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrReviewNotEligible
	}

	reviewed, err := s.reviews.ExistsForMemberEvent(ctx, identity.MemberID, eventID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}
	return event, nil
}

func (s *ReviewService) PrepareReview(ctx context.Context, identity models.Identity, eventID uint) (*ReviewForm, error) {
	event, err := s.checkEligibility(ctx, identity, eventID)
	if err != nil {
		return nil, err
	}
	return &ReviewForm{Event: event, Input: ReviewInput{EventID: eventID, Rating: 5}}, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, identity models.Identity, input ReviewInput) (*models.Review, error) {
	if _, err := s.checkEligibility(ctx, identity, input.EventID); err != nil {
		return nil, err
	}

	input.Comment = strings.TrimSpace(input.Comment)
	if err := formvalidation.Struct(input); err != nil {
		return nil, err
	}

	review := &models.Review{
		MemberID:   identity.MemberID,
		EventID:    input.EventID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		ReviewDate: s.now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, ErrAlreadyReviewed
		case errors.Is(err, repositories.ErrMemberNotFound):
			return nil, ErrMemberNotFound
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	configslog.Log.Info("Yorum eklendi", zap.Uint("review_id", review.ID), zap.Uint("event_id", review.EventID), zap.Uint("member_id", review.MemberID))
	return review, nil
}

func (s *ReviewService) findOwned(ctx context.Context, identity models.Identity, id uint) (*models.Review, error) {
	review, err := s.reviews.FindOwned(ctx, id, identity.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetOwnReview(ctx context.Context, identity models.Identity, id uint) (*ReviewForm, error) {
	review, err := s.findOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	return &ReviewForm{
		Event:  review.Event,
		Review: review,
		Input:  ReviewInput{EventID: review.EventID, Rating: review.Rating, Comment: review.Comment},
	}, nil
}

func (s *ReviewService) EditReview(ctx context.Context, identity models.Identity, id uint, input ReviewInput) (*models.Review, error) {
	review, err := s.findOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	input.EventID = review.EventID
	input.Comment = strings.TrimSpace(input.Comment)
	if err := formvalidation.Struct(input); err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := s.reviews.UpdateContent(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, identity models.Identity, id uint) (uint, error) {
	review, err := s.findOwned(ctx, identity, id)
	if err != nil {
		return 0, err
	}
	if err := s.reviews.DeleteOwned(ctx, id, identity.MemberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrReviewNotFound
		}
		return 0, err
	}
	configslog.Log.Info("Yorum silindi", zap.Uint("review_id", id), zap.Uint("member_id", identity.MemberID))
	return review.EventID, nil
}
