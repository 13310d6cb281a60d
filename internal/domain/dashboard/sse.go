package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	EventSnapshot  = "snapshot"
	EventSignedOut = "signed_out"
	EventHeartbeat = "heartbeat"
)

// eventsHandler godoc
// @Summary Stream de la vista principal (SSE)
// @Description Manda un "snapshot" al conectar y cada vez que la sesión del usuario cambia (SIGNED_IN recarga, SIGNED_OUT manda "signed_out" y cierra). La vista vive lo que dura la conexión.
// @Tags dashboard
// @Produce text/event-stream
// @Param selected query string false "ID de la mascota seleccionada"
// @Success 200 {string} string "text/event-stream"
// @Failure 401 {object} errorResponse "unauthorized"
// @Router /events [get]
func eventsHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Err() != nil {
			return
		}

		v, ok := openView(w, r, opts, r.URL.Query().Get("selected"))
		if !ok {
			return
		}
		defer v.Close()

		log := opts.Log.With(map[string]any{"path": r.URL.Path})

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		rc := http.NewResponseController(w)
		if err := rc.Flush(); err != nil {
			log.Error("streaming not supported", map[string]any{"error": err})
			return
		}

		if err := sendEvent(w, rc, EventSnapshot, v.Snapshot(opts.Now())); err != nil {
			return
		}

		heartbeat := time.NewTicker(opts.Heartbeat)
		defer heartbeat.Stop()

		ctx := r.Context()
		for {
			select {
			case <-v.Changes():
				if to := v.Redirect(); to != "" {
					_ = sendEvent(w, rc, EventSignedOut, map[string]string{"redirect": to})
					return
				}
				if v.Stale() {
					if err := v.Reload(ctx); err != nil {
						log.Warn("reload after sign in failed", map[string]any{"error": err})
					}
				}
				if err := sendEvent(w, rc, EventSnapshot, v.Snapshot(opts.Now())); err != nil {
					return
				}

			case <-heartbeat.C:
				if err := sendEvent(w, rc, EventHeartbeat, map[string]int64{"at": opts.Now().Unix()}); err != nil {
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}
}

func sendEvent(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, raw); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil {
		return err
	}
	// no todos los writers soportan deadline (httptest no)
	_ = rc.SetWriteDeadline(time.Now().Add(60 * time.Second))
	return nil
}
