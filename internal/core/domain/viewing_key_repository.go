package domain

import "context"

// ViewingKeyRepository is the abstraction for any kind of database intended
// to persist viewing key verifiers keyed by address.
type ViewingKeyRepository interface {
	// SetKey stores the verifier for its address, replacing any previous
	// one. Once set, an address always has a key.
	SetKey(ctx context.Context, key *ViewingKey) error
	// GetKeyByAddress returns the verifier of the given address. A null key
	// without error means the address never set one; authentication must
	// treat it as a failed match, not as a distinct condition.
	GetKeyByAddress(ctx context.Context, address string) (*ViewingKey, error)
}
