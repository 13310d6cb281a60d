package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"guiapet/internal/domain/pets"
	"guiapet/internal/domain/roster"
	"guiapet/internal/middleware"
	"guiapet/internal/platform/logger"
	"guiapet/internal/platform/validation"
)

const MsgAddPetFailed = "Erro ao adicionar pet. Tente novamente."

type Options struct {
	Deps

	// Now por defecto time.Now; los recordatorios usan la fecha de Now().
	Now func() time.Time

	// Heartbeat del stream SSE; por defecto 30s.
	Heartbeat time.Duration
}

func RegisterRoutes(r chi.Router, opts Options) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 30 * time.Second
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	r.Get("/", dashboardHandler(opts))
	r.Get("/events", eventsHandler(opts))

	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(opts))
		pr.Post("/", addPetHandler(opts))
		pr.Get("/{petID}/reminders", remindersHandler(opts))
	})
}

type rosterResponse struct {
	Pets       []PetView `json:"pets"`
	Onboarding bool      `json:"onboarding"`
}

type addPetResponse struct {
	Snapshot
	Form       pets.CreateInput `json:"form"`
	DialogOpen bool             `json:"dialog_open"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type remindersResponse struct {
	PetID    string         `json:"pet_id"`
	Pending  bool           `json:"pending"`
	Upcoming []ReminderItem `json:"upcoming"`
}

// openView abre una vista para el request; el caller hace defer Close.
func openView(w http.ResponseWriter, r *http.Request, opts Options, selectedID string) (*View, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return nil, false
	}

	v := NewView(opts.Deps)
	if err := v.Open(r.Context(), claims, selectedID); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return nil, false
	}
	return v, true
}

// dashboardHandler godoc
// @Summary Vista principal
// @Description Usuario, mascotas (más reciente primero) con sus vacunas, mascota seleccionada, onboarding y recordatorio de la mascota seleccionada. `selected` conserva la selección anterior si la mascota sigue existiendo.
// @Tags dashboard
// @Produce json
// @Param selected query string false "ID de la mascota seleccionada antes"
// @Success 200 {object} Snapshot
// @Failure 401 {object} errorResponse "unauthorized"
// @Router / [get]
func dashboardHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := openView(w, r, opts, r.URL.Query().Get("selected"))
		if !ok {
			return
		}
		defer v.Close()

		writeJSON(w, http.StatusOK, v.Snapshot(opts.Now()))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas del usuario
// @Tags pets
// @Produce json
// @Success 200 {object} rosterResponse
// @Failure 401 {object} errorResponse "unauthorized"
// @Router /pets [get]
func listPetsHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := openView(w, r, opts, "")
		if !ok {
			return
		}
		defer v.Close()

		s := v.Snapshot(opts.Now())
		writeJSON(w, http.StatusOK, rosterResponse{Pets: s.Pets, Onboarding: s.Onboarding})
	}
}

// addPetHandler godoc
// @Summary Agregar mascota
// @Description Crea la mascota con estado "Saudável" y sus vacunas V10 y Antirrábica (próxima dosis en 365 días). Devuelve la vista recargada con el formulario vacío y el diálogo cerrado.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body pets.CreateInput true "Datos de la mascota; name y breed obligatorios"
// @Success 201 {object} addPetResponse
// @Failure 400 {object} errorResponse "validación"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 409 {object} errorResponse "operation already in progress"
// @Failure 502 {object} errorResponse "Erro ao adicionar pet. Tente novamente."
// @Router /pets [post]
func addPetHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		var in pets.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		if _, err := opts.Roster.AddPet(r.Context(), claims.UserID, in); err != nil {
			var ve *validation.Error
			switch {
			case errors.Is(err, roster.ErrInvalidInput):
				resp := errorResponse{Error: "invalid input"}
				if errors.As(err, &ve) {
					resp.Fields = ve.Fields
				}
				writeJSON(w, http.StatusBadRequest, resp)
			case errors.Is(err, roster.ErrBusy):
				writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: MsgAddPetFailed})
			}
			return
		}

		// selección vacía => la primera, que es la recién creada
		v, ok := openView(w, r, opts, "")
		if !ok {
			return
		}
		defer v.Close()

		writeJSON(w, http.StatusCreated, addPetResponse{
			Snapshot:   v.Snapshot(opts.Now()),
			Form:       pets.CreateInput{},
			DialogOpen: false,
		})
	}
}

// remindersHandler godoc
// @Summary Recordatorios de vacunas de una mascota
// @Description Vacunas con próxima dosis entre hoy y los próximos 30 días (ventana configurable). Las vencidas no cuentan.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} remindersResponse
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 404 {object} errorResponse "pet not found"
// @Router /pets/{petID}/reminders [get]
func remindersHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := strings.TrimSpace(chi.URLParam(r, "petID"))

		v, ok := openView(w, r, opts, petID)
		if !ok {
			return
		}
		defer v.Close()

		s := v.Snapshot(opts.Now())
		if s.SelectedPetID != petID || petID == "" {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "pet not found"})
			return
		}

		writeJSON(w, http.StatusOK, remindersResponse{
			PetID:    petID,
			Pending:  s.Reminder.Pending,
			Upcoming: s.Reminder.Upcoming,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
