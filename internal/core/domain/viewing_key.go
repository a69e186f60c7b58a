package domain

import "crypto/subtle"

// ViewingKeyHashSize is the size in bytes of a viewing key verifier.
const ViewingKeyHashSize = 32

// ViewingKey holds the sha256 verifier of the viewing key of an address.
// The plaintext key is returned to the caller once at creation and never
// stored.
type ViewingKey struct {
	Address string
	KeyHash []byte
}

// NewViewingKey returns a new viewing key verifier for the given address.
func NewViewingKey(address string, keyHash []byte) (*ViewingKey, error) {
	if address == "" {
		return nil, ErrViewingKeyMissingAddress
	}
	if len(keyHash) != ViewingKeyHashSize {
		return nil, ErrViewingKeyInvalidHash
	}

	return &ViewingKey{
		Address: address,
		KeyHash: keyHash,
	}, nil
}

// Matches compares the given digest against the stored verifier in constant
// time.
func (k *ViewingKey) Matches(hash []byte) bool {
	return subtle.ConstantTimeCompare(k.KeyHash, hash) == 1
}
