package vaccines

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// CreateDefaults inserta V10 + Antirrábica para petID con fecha de hoy.
func (s *Service) CreateDefaults(ctx context.Context, petID string) ([]Vaccine, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	vs := Defaults(petID, now, now)
	if err := s.repo.CreateMany(ctx, vs); err != nil {
		return nil, err
	}
	return vs, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Vaccine, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}
