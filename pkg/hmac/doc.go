// Package hmac implements the RFC 2104 keyed-hash message authentication
// code as a streaming session over a pluggable hash primitive.
//
// A Session wraps one primitive instance (any fixed-block digest from
// pkg/primitive: SHA-2, SHA-3, BLAKE2b, BLAKE3, Whirlpool) and drives the
// two-pass HMAC protocol incrementally:
//
//	session, _ := hmac.NewWithKey(primitive.MustFactory("sha-256"), key)
//	session.Write(part1)
//	session.Write(part2)
//	tag, _ := session.Finalize()
//	defer session.Close()
//
// # Streaming and reuse
//
// Message bytes may be fed through Write in chunks of any size; the
// result equals a single Write of the concatenation. After Finalize the
// session retains both the outer digest (Hash) and the inner digest
// (HashInner, useful for HKDF-style derivations); repeated Finalize calls
// return the cached digest without re-driving the primitive. A finalized
// session is reusable: the next Write or SetKey transparently
// reinitializes it, and SetKey rekeys in place without reallocating the
// key-block buffer.
//
// # Key handling
//
// Keys longer than the primitive's block size are first compressed
// through one full primitive pass, per RFC 2104 Section 2. The effective
// key is padded to the block size and XORed with the ipad/opad constants
// (0x36/0x5c) into two keyed blocks held alongside the raw key block in
// one buffer. Rekeying overwrites that buffer, explicitly zeroing any
// tail left behind by a longer previous key. Close zeroes all key
// material and retained digests; it is idempotent, and every operation
// after it fails with ErrDisposed.
//
// # Concurrency
//
// A Session is not safe for concurrent use: confine one session to one
// goroutine or protect it with external mutual exclusion. All operations
// are CPU-bound and return immediately; there are no suspension points.
//
// # Errors
//
// All errors signal caller misuse or invalid state, never transient
// faults: ErrKeyLocked (rekey mid-message), ErrNotFinalized (digest read
// before Finalize), ErrDisposed (use after Close), ErrAlgorithmFixed
// (attempt to change the hash algorithm after construction).
//
// RFC 2104: HMAC - Keyed-Hashing for Message Authentication
// RFC 4231: HMAC-SHA Identifiers and Test Vectors
package hmac
