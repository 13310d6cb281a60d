package vaccines

import (
	"math"
	"time"
)

// DefaultWindowDays es la ventana de aviso de vacunas próximas.
const DefaultWindowDays = 30

// Reminder describe una vacuna dentro de la ventana de aviso.
type Reminder struct {
	VaccineID string
	Name      string
	NextDate  time.Time
	DaysUntil int
}

// DaysUntil = floor((nextDue - today) / día), sobre fechas calendario.
func DaysUntil(nextDue, today time.Time) int {
	diff := DateOf(nextDue).Sub(DateOf(today))
	return int(math.Floor(diff.Hours() / 24))
}

// Evaluator es puro: sin estado salvo la ventana; se recalcula en cada lectura.
type Evaluator struct {
	WindowDays int
}

func NewEvaluator(windowDays int) Evaluator {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return Evaluator{WindowDays: windowDays}
}

// IsUpcoming: 0 <= días <= ventana. Vacunas vencidas (días < 0) no cuentan.
func (e Evaluator) IsUpcoming(v Vaccine, today time.Time) bool {
	d := DaysUntil(v.NextDate, today)
	return d >= 0 && d <= e.window()
}

func (e Evaluator) HasPending(vs []Vaccine, today time.Time) bool {
	for _, v := range vs {
		if e.IsUpcoming(v, today) {
			return true
		}
	}
	return false
}

// Upcoming respeta el orden de entrada.
func (e Evaluator) Upcoming(vs []Vaccine, today time.Time) []Reminder {
	out := make([]Reminder, 0)
	for _, v := range vs {
		d := DaysUntil(v.NextDate, today)
		if d < 0 || d > e.window() {
			continue
		}
		out = append(out, Reminder{VaccineID: v.ID, Name: v.Name, NextDate: v.NextDate, DaysUntil: d})
	}
	return out
}

func (e Evaluator) window() int {
	if e.WindowDays <= 0 {
		return DefaultWindowDays
	}
	return e.WindowDays
}

// IsUpcoming con la ventana por defecto.
func IsUpcoming(v Vaccine, today time.Time) bool {
	return Evaluator{}.IsUpcoming(v, today)
}

// HasPendingReminder con la ventana por defecto.
func HasPendingReminder(vs []Vaccine, today time.Time) bool {
	return Evaluator{}.HasPending(vs, today)
}
