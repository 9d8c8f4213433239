package chash

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
)

// Hasher maps a key to a 64-bit hash. It must be deterministic: the same key
// always produces the same hash for the lifetime of a table.
type Hasher func(key string) uint64

// ErrUnknownHasher is returned by HasherByName for unrecognized names.
var ErrUnknownHasher = errors.New("unknown hasher")

// XXHash hashes keys with xxHash64. It is the default Hasher.
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// SipHash returns a keyed SipHash-2-4 Hasher. Use it when keys may be chosen
// by an adversary trying to pile entries into a single chain.
func SipHash(k0, k1 uint64) Hasher {
	return func(key string) uint64 {
		return siphash.Hash(k0, k1, []byte(key))
	}
}

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// FNV1a computes a 64-bit FNV-1a hash of the key.
func FNV1a(key string) uint64 {
	hash := uint64(offset64)
	for i := 0; i < len(key); i++ {
		hash ^= uint64(key[i])
		hash *= prime64
	}
	return hash
}

// Fixed SipHash keys used when a hasher is selected by name.
const (
	sipKey0 = 0x0706050403020100
	sipKey1 = 0x0f0e0d0c0b0a0908
)

// HasherByName resolves "xxhash", "siphash" or "fnv1a" to a Hasher.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case "xxhash", "":
		return XXHash, nil
	case "siphash":
		return SipHash(sipKey0, sipKey1), nil
	case "fnv1a", "fnv":
		return FNV1a, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
}
