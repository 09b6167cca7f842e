// Package storage defines the optional persistent-storage collaborator of
// spec.md §6: the core AtomSpace never imports a storage driver directly,
// it only ever calls through the KV interface here. KV.Each makes no
// ordering promise beyond what a single call's iteration yields, and no
// method promises durability beyond single-operation atomicity (§6).
package storage

import "context"

// KV is the adapter interface an external persistent-storage collaborator
// implements. The reasoning core depends only on this interface — never on
// a concrete driver — so storage can be swapped or omitted entirely
// (ErrUnsupported, §7, "persistent backend disabled").
type KV interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	// Each calls fn once per stored entry, in an implementation-defined
	// order, stopping early if fn returns false.
	Each(ctx context.Context, fn func(key string, value []byte) bool) error
}
