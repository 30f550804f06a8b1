package usecase

import (
	"context"
	"sort"
	"time"

	"jobboard-backend/internal/domain"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) domain.HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthReport {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := domain.HealthReport{Status: "healthy", Components: make(map[string]string, len(names))}
	for _, name := range names {
		if err := u.checks[name](ctx); err != nil {
			report.Components[name] = "down"
			report.Status = "degraded"
			continue
		}
		report.Components[name] = "up"
	}
	return report
}
