package vaccines

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout es el formato ISO de fecha calendario (sin hora) usado en storage y JSON.
const DateLayout = "2006-01-02"

// Vaccine es un registro de inmunización de una mascota.
// Date y NextDate son fechas calendario: siempre medianoche UTC.
type Vaccine struct {
	ID    string
	PetID string

	Name     string
	Date     time.Time // última dosis
	NextDate time.Time // próxima dosis
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOf reduce t a su fecha calendario (en la zona de t) expresada como medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return DateOf(t).Format(DateLayout)
}

// ParseDate acepta "YYYY-MM-DD" y también timestamps RFC3339 (se queda con la fecha).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
}
