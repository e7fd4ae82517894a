package usecase

import (
	"context"

	"taxpro-backend/internal/domain"
	"taxpro-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	notifier domain.Notifier
}

func NewHealthUsecase(notifier domain.Notifier) HealthUsecase {
	return &healthUsecase{notifier: notifier}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"email":  "unconfigured",
		"redis":  "disabled",
	}
	if u.notifier != nil && u.notifier.IsConfigured() {
		status["email"] = "configured"
	}
	if redis.Client() != nil {
		status["redis"] = "ok"
		if err := redis.HealthCheck(ctx); err != nil {
			status["redis"] = "unreachable"
		}
	}
	return status
}
