package service

import (
	"context"
	"fmt"

	"people_api/internal/repository"
)

type HealthService struct {
	db repository.Pinger
}

func NewHealthService(db repository.Pinger) *HealthService {
	return &HealthService{db: db}
}

func (s *HealthService) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	return nil
}
