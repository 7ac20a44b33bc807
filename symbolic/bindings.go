package symbolic

import (
	"github.com/benbjohnson/immutable"
)

// Bindings maps variable names to concrete values. It is persistent: Bind
// returns a new set of bindings and never mutates the receiver, so bindings
// can be forked cheaply when exploring alternative assignments.
type Bindings struct {
	m *immutable.Map
}

// NewBindings returns an empty set of bindings.
func NewBindings() *Bindings {
	return &Bindings{m: immutable.NewMap(nil)}
}

// Bind returns a copy of the bindings with name bound to value.
func (b *Bindings) Bind(name string, value uint64) *Bindings {
	return &Bindings{m: b.m.Set(name, value)}
}

// Get returns the value bound to name.
func (b *Bindings) Get(name string) (uint64, bool) {
	value, ok := b.m.Get(name)
	if !ok {
		return 0, false
	}
	return value.(uint64), true
}

// Len returns the number of bound variables.
func (b *Bindings) Len() int {
	return b.m.Len()
}
