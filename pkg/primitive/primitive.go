// Package primitive defines the narrow hash capability the streaming HMAC
// engine consumes, together with a registry of named digest algorithms
// (SHA-2, SHA-3, BLAKE2b, BLAKE3, Whirlpool families).
//
// The engine never inspects a primitive's internal state: everything it
// needs is expressed as explicit operations on the Primitive interface,
// including finalization. Block size and digest size are reported by the
// primitive itself rather than inferred from the algorithm family, so a
// primitive is fully self-describing.
//
// See main repository README for complete documentation and examples.
package primitive

import "hash"

// Primitive is a stateful digest engine: a fixed-block-size, CPU-bound,
// synchronous hash function exposed through a minimal capability surface.
//
// Contract:
//   - BlockSize and Size are immutable for the lifetime of one instance.
//   - Absorb may be called any number of times with chunks of any size;
//     the result is equivalent to a single Absorb of the concatenation.
//   - Finalize consumes the absorbed input and produces the digest; the
//     instance must be Reset before it can absorb a new message.
//
// Implementations are not required to be safe for concurrent use.
type Primitive interface {
	// Reset returns the primitive to its initial (empty-message) state.
	Reset()

	// Absorb feeds message bytes into the digest state.
	Absorb(p []byte)

	// Finalize completes the digest computation and returns the digest
	// bytes. The returned slice is freshly allocated and owned by the
	// caller. The primitive must be Reset before further use.
	Finalize() []byte

	// BlockSize reports the compression-function block size in bytes
	// (e.g. 64 for the SHA-256 family, 128 for SHA-384/512).
	BlockSize() int

	// Size reports the digest length in bytes (e.g. 20, 32, 48, 64).
	Size() int
}

// Factory is a zero-argument constructor producing a fresh Primitive.
// Each call must return an independent instance in its initial state.
type Factory func() Primitive

// hashPrimitive adapts a stdlib-style hash.Hash to the Primitive
// capability surface.
type hashPrimitive struct {
	h hash.Hash
}

// FromHash wraps a hash.Hash constructor as a primitive Factory.
//
// Block size and digest size come from the hash's own BlockSize and Size
// declarations, so any fixed-block hash.Hash works unmodified: stdlib
// SHA-2, x/crypto SHA-3 and BLAKE2b, BLAKE3, Whirlpool, etc.
func FromHash(newFunc func() hash.Hash) Factory {
	return func() Primitive {
		return &hashPrimitive{h: newFunc()}
	}
}

func (p *hashPrimitive) Reset() {
	p.h.Reset()
}

func (p *hashPrimitive) Absorb(b []byte) {
	// hash.Hash.Write never returns an error.
	p.h.Write(b) //nolint:errcheck
}

func (p *hashPrimitive) Finalize() []byte {
	return p.h.Sum(nil)
}

func (p *hashPrimitive) BlockSize() int {
	return p.h.BlockSize()
}

func (p *hashPrimitive) Size() int {
	return p.h.Size()
}
