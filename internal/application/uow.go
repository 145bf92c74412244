package application

import "context"

// UnitOfWork runs fn inside one storage transaction carried by ctx.
// Repositories pick the transaction up from the context they are given.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopUoW executes fn directly; stores that are atomic per call use it.
type NoopUoW struct{}

func (NoopUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
