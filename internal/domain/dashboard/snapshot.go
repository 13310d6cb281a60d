package dashboard

import (
	"time"

	"guiapet/internal/domain/roster"
	"guiapet/internal/domain/vaccines"
)

type Snapshot struct {
	User          *UserView    `json:"user"`
	Pets          []PetView    `json:"pets"`
	SelectedPetID string       `json:"selected_pet_id,omitempty"`
	SelectedPet   *PetView     `json:"selected_pet,omitempty"`
	Onboarding    bool         `json:"onboarding"`
	Reminder      ReminderView `json:"reminder"`
	Redirect      string       `json:"redirect,omitempty"`
}

type UserView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

type PetView struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Breed              string        `json:"breed"`
	Age                string        `json:"age,omitempty"`
	Weight             string        `json:"weight,omitempty"`
	PhotoURL           string        `json:"photo_url,omitempty"`
	HealthStatus       string        `json:"health_status"`
	HasPendingReminder bool          `json:"has_pending_reminder"`
	Vaccines           []VaccineView `json:"vaccines"`
	CreatedAt          time.Time     `json:"created_at"`
}

type VaccineView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	NextDate  string `json:"next_date"`
	Notes     string `json:"notes,omitempty"`
	DaysUntil int    `json:"days_until"`
	Upcoming  bool   `json:"upcoming"`
}

// ReminderView es el aviso de la mascota seleccionada.
type ReminderView struct {
	Pending  bool           `json:"pending"`
	Upcoming []ReminderItem `json:"upcoming"`
}

type ReminderItem struct {
	VaccineID string `json:"vaccine_id"`
	Name      string `json:"name"`
	NextDate  string `json:"next_date"`
	DaysUntil int    `json:"days_until"`
}

// Snapshot arma el estado de la vista para today. Los recordatorios se calculan en cada llamada.
func (v *View) Snapshot(today time.Time) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		Pets:     make([]PetView, 0, len(v.roster.Pets)),
		Reminder: ReminderView{Upcoming: []ReminderItem{}},
		Redirect: v.redirect,
	}
	if v.redirect != "" {
		return s
	}

	s.User = &UserView{ID: v.user.ID, Email: v.user.Email, FullName: v.user.FullName}
	s.Onboarding = v.loaded && v.roster.Onboarding

	for _, p := range v.roster.Pets {
		pv := toPetView(p, v.deps.Evaluator, today)
		s.Pets = append(s.Pets, pv)
		if p.ID == v.selectedID {
			sel := pv
			s.SelectedPet = &sel
			s.SelectedPetID = p.ID
		}
	}

	if s.SelectedPet != nil {
		for _, r := range v.deps.Evaluator.Upcoming(selectedVaccines(v.roster, v.selectedID), today) {
			s.Reminder.Upcoming = append(s.Reminder.Upcoming, ReminderItem{
				VaccineID: r.VaccineID,
				Name:      r.Name,
				NextDate:  vaccines.FormatDate(r.NextDate),
				DaysUntil: r.DaysUntil,
			})
		}
		s.Reminder.Pending = len(s.Reminder.Upcoming) > 0
	}

	return s
}

func toPetView(p roster.PetWithVaccines, ev vaccines.Evaluator, today time.Time) PetView {
	pv := PetView{
		ID:                 p.ID,
		Name:               p.Name,
		Breed:              p.Breed,
		Age:                p.Age,
		Weight:             p.Weight,
		PhotoURL:           p.PhotoURL,
		HealthStatus:       p.HealthStatus,
		HasPendingReminder: ev.HasPending(p.Vaccines, today),
		Vaccines:           make([]VaccineView, 0, len(p.Vaccines)),
		CreatedAt:          p.CreatedAt,
	}
	for _, vac := range p.Vaccines {
		pv.Vaccines = append(pv.Vaccines, VaccineView{
			ID:        vac.ID,
			Name:      vac.Name,
			Date:      vaccines.FormatDate(vac.Date),
			NextDate:  vaccines.FormatDate(vac.NextDate),
			Notes:     vac.Notes,
			DaysUntil: vaccines.DaysUntil(vac.NextDate, today),
			Upcoming:  ev.IsUpcoming(vac, today),
		})
	}
	return pv
}

func selectedVaccines(r roster.Roster, petID string) []vaccines.Vaccine {
	for _, p := range r.Pets {
		if p.ID == petID {
			return p.Vaccines
		}
	}
	return nil
}
