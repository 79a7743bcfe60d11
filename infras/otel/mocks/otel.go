package mocks

import (
	"context"
	"shareit/infras/otel"
	"sync"
)

// Otel hands out recording scopes and keeps the latest one per span name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

var _ otel.Otel = (*Otel)(nil)

func NewOtel() *Otel {
	return &Otel{scopes: map[string]*Scope{}}
}

func (o *Otel) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	scope := NewScope()

	o.mu.Lock()
	o.scopes[name] = scope
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the last scope opened under name, or nil.
func (o *Otel) Scope(name string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[name]
}
