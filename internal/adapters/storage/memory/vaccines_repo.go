package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"guiapet/internal/domain/vaccines"
)

type vaccineRepo struct {
	mu    sync.RWMutex
	byPet map[string][]vaccines.Vaccine
	ids   map[string]struct{}
}

func NewVaccineRepo() vaccines.Repository {
	return &vaccineRepo{
		byPet: make(map[string][]vaccines.Vaccine),
		ids:   make(map[string]struct{}),
	}
}

// CreateMany es todo o nada.
func (r *vaccineRepo) CreateMany(_ context.Context, vs []vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		if strings.TrimSpace(v.ID) == "" || strings.TrimSpace(v.PetID) == "" {
			return errors.New("vaccine id and pet id required")
		}
		if _, dup := r.ids[v.ID]; dup {
			return ErrConflict
		}
		if _, dup := seen[v.ID]; dup {
			return ErrConflict
		}
		seen[v.ID] = struct{}{}
	}

	for _, v := range vs {
		r.ids[v.ID] = struct{}{}
		r.byPet[v.PetID] = append(r.byPet[v.PetID], v)
	}
	return nil
}

func (r *vaccineRepo) ListByPet(_ context.Context, petID string) ([]vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]vaccines.Vaccine{}, r.byPet[petID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDate.Before(out[j].NextDate)
	})
	return out, nil
}
