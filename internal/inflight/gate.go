// Package inflight rejects duplicate submissions of the same action by the
// same session while one is still running.
package inflight

import "sync"

// Gate tracks running submissions by key.
type Gate struct {
	mu      sync.Mutex
	running map[string]struct{}
}

// NewGate creates an empty gate.
func NewGate() *Gate {
	return &Gate{running: make(map[string]struct{})}
}

// Key joins a session id and an action name.
func Key(sessionID, action string) string {
	return sessionID + "|" + action
}

// Acquire marks key as running. When ok is false another submission holds
// the key and release is a no-op. release is idempotent.
func (g *Gate) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.running[key]; busy {
		return func() {}, false
	}
	g.running[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, key)
			g.mu.Unlock()
		})
	}, true
}

// Running reports whether key is currently held.
func (g *Gate) Running(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.running[key]
	return busy
}
