package ports

import "context"

// Pauser blocks until the user acknowledges a message.
type Pauser interface {
	Pause(ctx context.Context, prompt string) error
}

// PauserFunc adapts a function to Pauser.
type PauserFunc func(ctx context.Context, prompt string) error

// Pause calls f.
func (f PauserFunc) Pause(ctx context.Context, prompt string) error {
	return f(ctx, prompt)
}

// NoPause is a Pauser that returns immediately.
var NoPause Pauser = PauserFunc(func(context.Context, string) error { return nil })
