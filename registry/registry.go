// Package registry announces strloin nodes to a discovery backend.
package registry

import "context"

// Registrar publishes the address a strloin node serves corpora on, so
// other nodes can add it to their hash ring.
type Registrar interface {
	// Register announces addr under service until Deregister is called.
	Register(ctx context.Context, service string, addr string) error
	// Deregister withdraws addr, e.g. on graceful shutdown.
	Deregister(ctx context.Context, service string, addr string) error
}

// NopRegistrar announces nothing. Nodes using it rely on a static peer list.
type NopRegistrar struct{}

func (NopRegistrar) Register(context.Context, string, string) error   { return nil }
func (NopRegistrar) Deregister(context.Context, string, string) error { return nil }
