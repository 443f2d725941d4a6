package http

import (
	"crypto/subtle"
	"sync"
)

// stateGuard accepts the state value issued for one login exactly once.
type stateGuard struct {
	mu       sync.Mutex
	expected string
	used     bool
}

func newStateGuard(state string) *stateGuard {
	return &stateGuard{expected: state}
}

func (g *stateGuard) consume(state string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.used || g.expected == "" || state == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(g.expected), []byte(state)) != 1 {
		return false
	}
	g.used = true
	return true
}
