package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/vaccines"
	"guiapet/internal/platform/inflight"
	"guiapet/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrVaccinesNotCreated: la mascota quedó guardada pero sus vacunas no.
	ErrVaccinesNotCreated = errors.New("pet created but default vaccines failed")
	ErrBusy               = inflight.ErrBusy
)

// máximo de fetches de vacunas en paralelo por carga
const vaccineFetchLimit = 8

type Service struct {
	pets     *pets.Service
	vaccines *vaccines.Service
	gate     *inflight.Gate
	log      logger.Logger
}

func NewService(petsSvc *pets.Service, vaccinesSvc *vaccines.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:     petsSvc,
		vaccines: vaccinesSvc,
		gate:     inflight.New(),
		log:      log,
	}
}

// Load trae las mascotas de userID y las vacunas de cada una.
// Un error al traer mascotas se loguea y se devuelve (el caller conserva lo que tenía).
// Un error al traer vacunas de una mascota deja esa mascota con lista vacía.
func (s *Service) Load(ctx context.Context, userID string) (Roster, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Roster{}, ErrInvalidInput
	}
	log := s.log.With(map[string]any{"user_id": userID})

	list, err := s.pets.ListByOwner(ctx, userID)
	if err != nil {
		log.Error("error loading pets", map[string]any{"error": err})
		return Roster{}, fmt.Errorf("load pets: %w", err)
	}

	out := make([]PetWithVaccines, len(list))

	var g errgroup.Group
	g.SetLimit(vaccineFetchLimit)
	for i, p := range list {
		i, p := i, p
		g.Go(func() error {
			vs, err := s.vaccines.ListByPet(ctx, p.ID)
			if err != nil {
				log.Error("error loading vaccines", map[string]any{"pet_id": p.ID, "error": err})
				vs = nil
			}
			if vs == nil {
				vs = []vaccines.Vaccine{}
			}
			out[i] = PetWithVaccines{Pet: p, Vaccines: vs}
			return nil
		})
	}
	_ = g.Wait()

	return Roster{Pets: out, Onboarding: len(out) == 0}, nil
}

// Validate chequea lo mismo que AddPet sin tocar storage.
func (s *Service) Validate(userID string, in pets.CreateInput) error {
	if err := s.pets.Validate(userID, in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// AddPet crea la mascota y sus dos vacunas por defecto.
// Si falla la mascota no se intentan las vacunas. Si fallan las vacunas la mascota queda
// guardada (sin compensación) y se devuelve ErrVaccinesNotCreated junto con la mascota.
func (s *Service) AddPet(ctx context.Context, userID string, in pets.CreateInput) (pets.Pet, error) {
	if err := s.Validate(userID, in); err != nil {
		return pets.Pet{}, err
	}

	release, err := s.gate.Acquire("add-pet:" + strings.TrimSpace(userID))
	if err != nil {
		return pets.Pet{}, err
	}
	defer release()

	log := s.log.With(map[string]any{"user_id": userID})

	p, err := s.pets.Create(ctx, userID, in)
	if err != nil {
		log.Error("error adding pet", map[string]any{"error": err})
		return pets.Pet{}, fmt.Errorf("create pet: %w", err)
	}

	if _, err := s.vaccines.CreateDefaults(ctx, p.ID); err != nil {
		log.Error("error adding default vaccines", map[string]any{"pet_id": p.ID, "error": err})
		return p, fmt.Errorf("%w: %w", ErrVaccinesNotCreated, err)
	}

	log.Info("pet added", map[string]any{"pet_id": p.ID})
	return p, nil
}
