package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"guiapet/internal/domain/pets"
)

var (
	ErrConflict = errors.New("already exists")
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return pets.Pet{}, errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return pets.Pet{}, ErrConflict
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *petRepo) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// created_at desc; id como desempate para que el orden sea estable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
