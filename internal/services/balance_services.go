package services

import (
	"context"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"
)

// BalanceService exposes the singleton webshop balance. All movements
// happen inside the order pipelines' transactions; this service only
// bootstraps the row and reads the running total.
type BalanceService struct {
	Repo *repository.BalanceRepository
}

func NewBalanceService(r *repository.BalanceRepository) *BalanceService {
	return &BalanceService{Repo: r}
}

// Init creates the singleton balance row on first startup.
func (s *BalanceService) Init(ctx context.Context) error {
	return s.Repo.EnsureExists(ctx)
}

func (s *BalanceService) Get(ctx context.Context) (float64, error) {
	return s.Repo.Get(ctx)
}
