package hmac

import "github.com/pkg/errors"

// Session misuse errors. All are synchronous and non-retryable: they
// report an invalid call sequence, not a transient fault.
var (
	// ErrKeyLocked is returned by SetKey while message bytes are being
	// absorbed. The key must not change mid-message.
	ErrKeyLocked = errors.New("key cannot change while a message is being absorbed")

	// ErrNotFinalized is returned by Hash and HashInner before Finalize
	// has been called.
	ErrNotFinalized = errors.New("digest not available before finalize")

	// ErrDisposed is returned by every operation after Close.
	ErrDisposed = errors.New("session has been disposed")

	// ErrAlgorithmFixed is returned by SetAlgorithm. The underlying hash
	// algorithm is fixed when the session is constructed.
	ErrAlgorithmFixed = errors.New("hash algorithm is fixed at construction")
)
