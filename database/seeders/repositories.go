package seeders

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs"
	"etkinlik.link/repositories"
)

// SeedRepositories yönetici hesabını ve örnek etkinlikleri depo arayüzleri üzerinden ekler.
// Bellek içi çalıştırmada veritabanı seeder'larının karşılığıdır.
func SeedRepositories(ctx context.Context, repos *repositories.Repositories, cfg configs.SeedConfig) error {
	admin, err := AdminMember(cfg)
	if err != nil {
		return err
	}
	if err := repos.Members.Create(ctx, admin); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return err
	}

	count, err := repos.Events.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, event := range SampleEvents(time.Now()) {
		event := event
		if err := repos.Events.Create(ctx, &event); err != nil {
			return err
		}
	}
	return nil
}
