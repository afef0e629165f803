package memory

import (
	"context"
	"sort"

	"etkinlik.link/models"
	"etkinlik.link/repositories"
)

type memberRepository struct {
	s *Store
}

var _ repositories.IMemberRepository = (*memberRepository)(nil)

func (r *memberRepository) Create(_ context.Context, member *models.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.members {
		if m.Email == member.Email {
			return repositories.ErrDuplicate
		}
	}
	r.s.stamp("members", &member.BaseModel)
	if member.Role == "" {
		member.Role = models.RoleMember
	}
	stored := *member
	stored.BookingCount, stored.ReviewCount = 0, 0
	r.s.members[member.ID] = stored
	return nil
}

func (r *memberRepository) FindByID(_ context.Context, id uint) (*models.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	member, ok := r.s.memberWithCounts(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.members {
		if m.Email == email {
			member := m
			return &member, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memberRepository) ExistsByEmail(_ context.Context, email string, excludeID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for id, m := range r.s.members {
		if m.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memberRepository) ListByRole(_ context.Context, role models.Role) ([]models.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	members := make([]models.Member, 0)
	for id, m := range r.s.members {
		if m.Role != role {
			continue
		}
		member, _ := r.s.memberWithCounts(id)
		members = append(members, member)
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].FullName != members[j].FullName {
			return members[i].FullName < members[j].FullName
		}
		return members[i].ID < members[j].ID
	})
	return members, nil
}

func (r *memberRepository) Update(_ context.Context, member *models.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.members[member.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for id, m := range r.s.members {
		if id != member.ID && m.Email == member.Email {
			return repositories.ErrDuplicate
		}
	}

	current.FullName = member.FullName
	current.Email = member.Email
	current.PasswordHash = member.PasswordHash
	current.Role = member.Role
	current.PreferredCategory = member.PreferredCategory
	current.UpdatedAt = r.s.now()
	r.s.members[member.ID] = current
	return nil
}

func (r *memberRepository) CountByRole(_ context.Context, role models.Role) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, m := range r.s.members {
		if m.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memberRepository) DeleteWithDependents(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	member, ok := r.s.members[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if member.Role != models.RoleMember {
		return repositories.ErrProtectedRecord
	}

	for reviewID, rv := range r.s.reviews {
		if rv.MemberID == id {
			delete(r.s.reviews, reviewID)
		}
	}
	for bookingID, b := range r.s.bookings {
		if b.MemberID == id {
			delete(r.s.bookings, bookingID)
		}
	}
	delete(r.s.members, id)
	return nil
}
