package services

import (
	"context"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"golang.org/x/sync/errgroup"
)

// DashboardUpcomingLimit yönetici panelinde gösterilen yaklaşan etkinlik sayısıdır.
const DashboardUpcomingLimit = 5

// DashboardStats yönetici ana sayfasının özet verisidir.
type DashboardStats struct {
	TotalEvents    int64          `json:"total_events"`
	TotalMembers   int64          `json:"total_members"`
	TotalBookings  int64          `json:"total_bookings"`
	TotalInquiries int64          `json:"total_inquiries"`
	TotalReviews   int64          `json:"total_reviews"`
	UpcomingEvents []models.Event `json:"upcoming_events"`
}

type IDashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}

type DashboardService struct {
	repos *repositories.Repositories
	now   func() time.Time
}

// NewDashboardService yeni bir DashboardService örneği oluşturur.
func NewDashboardService(repos *repositories.Repositories) IDashboardService {
	return &DashboardService{repos: repos, now: time.Now}
}

// GetStats sayımları paralel sorgular; herhangi biri hata verirse ilk hata döner.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalEvents, err = s.repos.Events.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalMembers, err = s.repos.Members.CountByRole(gctx, models.RoleMember)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalBookings, err = s.repos.Bookings.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalInquiries, err = s.repos.Inquiries.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalReviews, err = s.repos.Reviews.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingEvents, err = s.repos.Events.ListUpcoming(gctx, s.now(), DashboardUpcomingLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
