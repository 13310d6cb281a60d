package roster

import (
	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/vaccines"
)

// PetWithVaccines es el agregado que consume la vista principal.
type PetWithVaccines struct {
	pets.Pet
	Vaccines []vaccines.Vaccine
}

// Roster son las mascotas del usuario, más reciente primero.
type Roster struct {
	Pets []PetWithVaccines

	// Onboarding: el usuario todavía no tiene mascotas.
	Onboarding bool
}

// Select devuelve la mascota con previousID si sigue en el roster; si no, la primera.
func (r Roster) Select(previousID string) (PetWithVaccines, bool) {
	if len(r.Pets) == 0 {
		return PetWithVaccines{}, false
	}
	if previousID != "" {
		for _, p := range r.Pets {
			if p.ID == previousID {
				return p, true
			}
		}
	}
	return r.Pets[0], true
}
