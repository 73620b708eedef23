package hmac

import (
	"crypto/subtle"

	"github.com/pkg/errors"

	"github.com/forcebit/hmac-streaming-rfc2104-go/pkg/primitive"
)

// MaxBlockSize is the largest primitive block size a Session accepts.
// Every supported algorithm family uses 64, 72, 128 or 136 bytes; a
// primitive reporting something outside (0, MaxBlockSize] is rejected at
// construction.
const MaxBlockSize = 256

// sessionState is the streaming state machine of a Session.
type sessionState int

const (
	// stateIdle: no message bytes absorbed since the last key set or
	// reset; the inner hash is not yet primed.
	stateIdle sessionState = iota

	// stateHashing: the inner hash has been primed with the ipad block
	// and has absorbed zero or more message bytes.
	stateHashing

	// stateFinalized: the outer digest has been computed and cached; the
	// next Write or SetKey must reinitialize first.
	stateFinalized
)

// Session is a streaming HMAC computation bound to one hash primitive
// and one key. It owns its primitive instance and its key-block buffer
// exclusively; neither is shared.
//
// Not safe for concurrent use: confine a session to one goroutine or
// protect it with external mutual exclusion.
type Session struct {
	prim   primitive.Primitive
	blocks *keyBlocks
	state  sessionState

	blockSize  int
	digestSize int

	// outer and inner cache the digests of the last Finalize, valid only
	// in stateFinalized. Repeated Finalize calls return the cache rather
	// than re-driving the already-finalized primitive.
	outer []byte
	inner []byte

	disposed bool
}

// New constructs a session around a fresh primitive produced by factory.
// The key must be set with SetKey before the first Finalize.
//
// The block size is taken from the primitive's own declaration; it must
// lie in (0, MaxBlockSize].
func New(factory primitive.Factory) (*Session, error) {
	if factory == nil {
		return nil, errors.New("primitive factory is nil")
	}
	prim := factory()
	blockSize := prim.BlockSize()
	if blockSize <= 0 || blockSize > MaxBlockSize {
		return nil, errors.Errorf("primitive block size %d outside supported range 1..%d", blockSize, MaxBlockSize)
	}
	digestSize := prim.Size()
	if digestSize <= 0 {
		return nil, errors.Errorf("primitive digest size %d is invalid", digestSize)
	}
	prim.Reset()
	return &Session{
		prim:       prim,
		blocks:     newKeyBlocks(blockSize),
		state:      stateIdle,
		blockSize:  blockSize,
		digestSize: digestSize,
		outer:      make([]byte, 0, digestSize),
		inner:      make([]byte, 0, digestSize),
	}, nil
}

// NewWithKey constructs a session and sets its key in one step.
func NewWithKey(factory primitive.Factory, key []byte) (*Session, error) {
	s, err := New(factory)
	if err != nil {
		return nil, err
	}
	if err := s.SetKey(key); err != nil {
		s.Close() //nolint:errcheck // Close on this path cannot fail
		return nil, err
	}
	return s, nil
}

// SetKey derives the session's key blocks from key, reusing the existing
// buffer (rekeying never reallocates). Keys longer than the block size
// are compressed through one primitive pass first.
//
// Returns ErrKeyLocked — without touching the key buffer — if message
// bytes have already been absorbed for the current message. On a
// finalized session the key may change; the session reinitializes
// transparently first.
func (s *Session) SetKey(key []byte) error {
	if s.disposed {
		return ErrDisposed
	}
	if s.state == stateHashing {
		return ErrKeyLocked
	}
	if s.state == stateFinalized {
		s.reinit()
	}
	s.blocks.set(s.prim, key)
	return nil
}

// Write absorbs message bytes. It may be called any number of times with
// chunks of any size; the digest equals that of a single Write of the
// concatenation.
//
// On the first Write after a key set or reset, the inner hash is primed
// with the ipad key block. A session left finalized by a previous use is
// reinitialized transparently.
//
// Write implements io.Writer and never returns a short count.
func (s *Session) Write(p []byte) (int, error) {
	if s.disposed {
		return 0, ErrDisposed
	}
	if s.state == stateFinalized {
		s.reinit()
	}
	if s.state == stateIdle {
		s.prim.Absorb(s.blocks.ipad())
		s.state = stateHashing
	}
	s.prim.Absorb(p)
	return len(p), nil
}

// Finalize completes the two-pass HMAC protocol and returns the outer
// digest (the authentication tag), a fresh copy owned by the caller.
//
// An empty message is valid: if no bytes were ever written, the inner
// hash is primed now. Calling Finalize again without an intervening
// Write or Reset returns the cached digest; the primitive is not
// re-driven.
func (s *Session) Finalize() ([]byte, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.state == stateFinalized {
		return append([]byte(nil), s.outer...), nil
	}
	if s.state == stateIdle {
		s.prim.Absorb(s.blocks.ipad())
	}

	innerDigest := s.prim.Finalize()

	s.prim.Reset()
	s.prim.Absorb(s.blocks.opad())
	s.prim.Absorb(innerDigest)
	outerDigest := s.prim.Finalize()

	s.inner = append(s.inner[:0], innerDigest...)
	s.outer = append(s.outer[:0], outerDigest...)
	zero(innerDigest)
	s.state = stateFinalized

	return append([]byte(nil), s.outer...), nil
}

// Reset discards any absorbed message bytes and cached digests and
// returns the session to the idle state. Key material is untouched, so
// the session can immediately absorb a new message under the same key.
func (s *Session) Reset() error {
	if s.disposed {
		return ErrDisposed
	}
	s.reinit()
	return nil
}

// reinit performs the transparent reinitialization recorded at finalize
// time: fresh primitive state, caches dropped, back to idle.
func (s *Session) reinit() {
	s.prim.Reset()
	s.outer = s.outer[:0]
	s.inner = s.inner[:0]
	s.state = stateIdle
}

// Key returns a copy of the effective key: the raw key block truncated
// to the original key length, or to the digest length when the key was
// compressed.
func (s *Session) Key() ([]byte, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	return s.blocks.key(), nil
}

// Hash returns a copy of the finalized outer digest.
// Returns ErrNotFinalized before Finalize has been called.
func (s *Session) Hash() ([]byte, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.state != stateFinalized {
		return nil, ErrNotFinalized
	}
	return append([]byte(nil), s.outer...), nil
}

// HashInner returns a copy of the finalized inner digest, the
// intermediate value of HMAC's first pass. Constructions that derive
// keys from the intermediate state (HKDF-style) need it; ordinary
// callers want Hash.
// Returns ErrNotFinalized before Finalize has been called.
func (s *Session) HashInner() ([]byte, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.state != stateFinalized {
		return nil, ErrNotFinalized
	}
	return append([]byte(nil), s.inner...), nil
}

// SetAlgorithm always fails with ErrAlgorithmFixed: the underlying hash
// algorithm is part of the session's identity and cannot change after
// construction. Construct a new session instead.
func (s *Session) SetAlgorithm(string) error {
	if s.disposed {
		return ErrDisposed
	}
	return ErrAlgorithmFixed
}

// BlockSize reports the primitive's block size in bytes.
func (s *Session) BlockSize() int { return s.blockSize }

// Size reports the digest length in bytes.
func (s *Session) Size() int { return s.digestSize }

// Close zeroes all secret material — the raw key block, both pad blocks
// and the retained digests — releases the primitive and marks the
// session unusable. Idempotent; safe to defer on every path. Every
// operation after Close fails with ErrDisposed.
func (s *Session) Close() error {
	if s.disposed {
		return nil
	}
	s.blocks.zeroize()
	zero(s.outer[:cap(s.outer)])
	zero(s.inner[:cap(s.inner)])
	s.outer = nil
	s.inner = nil
	s.prim = nil
	s.disposed = true
	return nil
}

// Equal compares two MACs in constant time. Use this, never bytes.Equal,
// when verifying a received tag against a computed one.
func Equal(mac1, mac2 []byte) bool {
	return subtle.ConstantTimeCompare(mac1, mac2) == 1
}
