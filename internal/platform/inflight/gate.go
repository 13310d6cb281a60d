// Package inflight implementa los flags de "operación en curso" por key.
// Un segundo intento con la misma key mientras el primero sigue vivo se rechaza,
// no se encola.
package inflight

import (
	"errors"
	"sync"
)

var ErrBusy = errors.New("operation already in progress")

type Gate struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func New() *Gate {
	return &Gate{active: make(map[string]struct{})}
}

// Acquire marca key como ocupada. release es idempotente.
func (g *Gate) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return nil, ErrBusy
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}

func (g *Gate) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}
