package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"guiapet/internal/platform/validation"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo      Repository
	validator *validation.Validator
	now       func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: validation.New(),
		now:       time.Now,
	}
}

type CreateInput struct {
	Name     string `json:"name" validate:"required"`
	Breed    string `json:"breed" validate:"required"`
	Age      string `json:"age"`
	Weight   string `json:"weight"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

// Normalize recorta espacios; se usa antes de validar para que "  " cuente como vacío.
func (in CreateInput) Normalize() CreateInput {
	return CreateInput{
		Name:     strings.TrimSpace(in.Name),
		Breed:    strings.TrimSpace(in.Breed),
		Age:      strings.TrimSpace(in.Age),
		Weight:   strings.TrimSpace(in.Weight),
		PhotoURL: strings.TrimSpace(in.PhotoURL),
	}
}

// Validate no toca el repo.
func (s *Service) Validate(ownerUserID string, in CreateInput) error {
	if strings.TrimSpace(ownerUserID) == "" {
		return ErrInvalidInput
	}
	if err := s.validator.Validate(in.Normalize()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if err := s.Validate(ownerUserID, in); err != nil {
		return Pet{}, err
	}
	in = in.Normalize()

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		OwnerUserID:  strings.TrimSpace(ownerUserID),
		Name:         in.Name,
		Breed:        in.Breed,
		Age:          in.Age,
		Weight:       in.Weight,
		PhotoURL:     in.PhotoURL,
		HealthStatus: HealthyStatus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.repo.Create(ctx, p)
	if err != nil {
		return Pet{}, err
	}
	return saved, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}
