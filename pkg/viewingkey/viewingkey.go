package viewingkey

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// KeyPrefix prepended to every derived viewing key.
const KeyPrefix = "api_key_"

// HashSize is the size in bytes of a key verifier.
const HashSize = sha256.Size

var dummyHash [HashSize]byte

// New derives a viewing key for the given address from the caller supplied
// entropy mixed with the current seed. It returns the plaintext key, the
// verifier to store in its place and the advanced seed. The same inputs
// always derive the same key.
func New(seed, entropy []byte, address string) (string, []byte, []byte) {
	material := sha256.New()
	material.Write(seed)
	material.Write([]byte(address))
	material.Write(entropy)
	digest := material.Sum(nil)

	key := KeyPrefix + base64.StdEncoding.EncodeToString(digest)

	next := sha256.New()
	next.Write(digest)
	next.Write(seed)

	return key, HashKey(key), next.Sum(nil)
}

// HashKey returns the sha256 verifier of a plaintext key.
func HashKey(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}

// Check compares the plaintext key against a stored verifier in constant
// time. A null verifier never matches, taking the same time as a mismatch so
// that a missing key is indistinguishable from a wrong one.
func Check(key string, storedHash []byte) bool {
	target := dummyHash[:]
	present := 0
	if len(storedHash) == HashSize {
		target = storedHash
		present = 1
	}

	match := subtle.ConstantTimeCompare(HashKey(key), target)
	return subtle.ConstantTimeSelect(present, match, 0) == 1
}
