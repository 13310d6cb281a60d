package session

import (
	"sync"
	"time"
)

type EventType string

const (
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
)

// Event es una notificación de cambio de sesión para un usuario.
type Event struct {
	Type   EventType
	UserID string
	Email  string
	At     time.Time
}

// Hub es el único punto de suscripción a cambios de sesión.
// Los listeners se llaman en la goroutine de Publish; no deben bloquear.
type Hub struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[uint64]func(Event)
	now       func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		listeners: make(map[uint64]func(Event)),
		now:       time.Now,
	}
}

// Subscribe registra fn y devuelve la función para soltarla.
// Quien se suscribe es dueño de llamar unsubscribe (idempotente) al cerrar su vista.
func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = h.now()
	}

	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Len devuelve la cantidad de listeners vivos.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
