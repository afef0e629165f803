package memory

import (
	"context"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/repositories"
)

type reviewRepository struct {
	s *Store
}

var _ repositories.IReviewRepository = (*reviewRepository)(nil)

func (r *reviewRepository) Create(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[review.MemberID]; !ok {
		return repositories.ErrMemberNotFound
	}
	if _, ok := r.s.events[review.EventID]; !ok {
		return repositories.ErrNotFound
	}
	for _, rv := range r.s.reviews {
		if rv.MemberID == review.MemberID && rv.EventID == review.EventID {
			return repositories.ErrDuplicate
		}
	}
	r.s.stamp("reviews", &review.BaseModel)
	stored := *review
	stored.Member, stored.Event = nil, nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r *reviewRepository) FindOwned(_ context.Context, id, memberID uint) (*models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rv, ok := r.s.reviews[id]
	if !ok || rv.MemberID != memberID {
		return nil, repositories.ErrNotFound
	}
	rv = r.s.withReviewRelations(rv)
	rv.Member = nil
	return &rv, nil
}

func (r *reviewRepository) ExistsForMemberEvent(_ context.Context, memberID, eventID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rv := range r.s.reviews {
		if rv.MemberID == memberID && rv.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *reviewRepository) UpdateContent(_ context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.reviews[review.ID]
	if !ok || current.MemberID != review.MemberID {
		return repositories.ErrNotFound
	}
	current.Rating = review.Rating
	current.Comment = review.Comment
	current.UpdatedAt = r.s.now()
	r.s.reviews[review.ID] = current
	return nil
}

func (r *reviewRepository) DeleteOwned(_ context.Context, id, memberID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rv, ok := r.s.reviews[id]
	if !ok || rv.MemberID != memberID {
		return repositories.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *reviewRepository) ListByEvent(_ context.Context, eventID uint) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.EventID != eventID {
			continue
		}
		rv = r.s.withReviewRelations(rv)
		rv.Event = nil
		reviews = append(reviews, rv)
	}
	newestFirst(reviews, func(rv models.Review) (time.Time, uint) { return rv.ReviewDate, rv.ID })
	return reviews, nil
}

func (r *reviewRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.reviews)), nil
}
