package tui

import "sync"

// Gate approves controller confirmations only while armed. The TUI draws its
// own y/n prompt and arms the gate for the single call that follows.
type Gate struct {
	mu    sync.Mutex
	armed bool
}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) Confirm(string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.armed
	g.armed = false
	return ok
}

// Run calls fn with the gate armed.
func (g *Gate) Run(fn func() error) error {
	g.mu.Lock()
	g.armed = true
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.armed = false
		g.mu.Unlock()
	}()
	return fn()
}
