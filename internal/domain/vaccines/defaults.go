package vaccines

import (
	"time"

	"github.com/google/uuid"
)

const (
	NameV10         = "V10"
	NameAntirrabica = "Antirrábica"

	// DefaultBoosterDays: refuerzo anual.
	DefaultBoosterDays = 365
)

// Defaults arma las dos vacunas que acompañan a toda mascota nueva.
func Defaults(petID string, today time.Time, now time.Time) []Vaccine {
	date := DateOf(today)
	next := date.AddDate(0, 0, DefaultBoosterDays)

	out := make([]Vaccine, 0, 2)
	for _, name := range []string{NameV10, NameAntirrabica} {
		out = append(out, Vaccine{
			ID:        uuid.NewString(),
			PetID:     petID,
			Name:      name,
			Date:      date,
			NextDate:  next,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}
