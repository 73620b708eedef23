package primitive

import (
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 remains specified (RFC 2202) and is provided for interop
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"

	"github.com/jzelinskie/whirlpool"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Algorithm identifiers for the registered hash primitives.
const (
	// SHA-1 (RFC 3174) — legacy interop only; HMAC-SHA1 test vectors are
	// published in RFC 2202.
	AlgorithmSHA1 = "sha-1"

	// SHA-2 family (NIST FIPS 180-4)
	AlgorithmSHA256    = "sha-256"
	AlgorithmSHA384    = "sha-384"
	AlgorithmSHA512    = "sha-512"
	AlgorithmSHA512256 = "sha-512/256"

	// SHA-3 family (NIST FIPS 202)
	AlgorithmSHA3256 = "sha3-256"
	AlgorithmSHA3512 = "sha3-512"

	// BLAKE2b family (RFC 7693)
	AlgorithmBLAKE2b256 = "blake2b-256"
	AlgorithmBLAKE2b512 = "blake2b-512"

	// BLAKE3 with a 256-bit output
	AlgorithmBLAKE3256 = "blake3-256"

	// Whirlpool (ISO/IEC 10118-3)
	AlgorithmWhirlpool = "whirlpool"
)

// ErrUnsupported is returned when a requested algorithm name is not
// present in the registry.
var ErrUnsupported = errors.New("hash algorithm not supported")

// definition describes one registered algorithm.
type definition struct {
	name       string
	blockSize  int
	digestSize int
	newFunc    func() hash.Hash
}

var registry = map[string]*definition{}

// register adds an algorithm to the registry. blockSize and digestSize
// must match what the constructed hash itself declares.
func register(name string, blockSize, digestSize int, newFunc func() hash.Hash) {
	registry[name] = &definition{
		name:       name,
		blockSize:  blockSize,
		digestSize: digestSize,
		newFunc:    newFunc,
	}
}

func init() {
	register(AlgorithmSHA1, 64, 20, sha1.New)
	register(AlgorithmSHA256, 64, 32, sha256.New)
	register(AlgorithmSHA384, 128, 48, sha512.New384)
	register(AlgorithmSHA512, 128, 64, sha512.New)
	register(AlgorithmSHA512256, 128, 32, sha512.New512_256)
	register(AlgorithmSHA3256, 136, 32, func() hash.Hash { return sha3.New256() })
	register(AlgorithmSHA3512, 72, 64, func() hash.Hash { return sha3.New512() })
	register(AlgorithmBLAKE2b256, 128, 32, func() hash.Hash {
		// Unkeyed BLAKE2b construction cannot fail.
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	})
	register(AlgorithmBLAKE2b512, 128, 64, func() hash.Hash {
		h, err := blake2b.New512(nil)
		if err != nil {
			panic(err)
		}
		return h
	})
	register(AlgorithmBLAKE3256, 64, 32, func() hash.Hash { return blake3.New(32, nil) })
	register(AlgorithmWhirlpool, 64, 64, whirlpool.New)
}

// New returns a Factory for the named algorithm.
//
// Supported names: sha-1, sha-256, sha-384, sha-512, sha-512/256,
// sha3-256, sha3-512, blake2b-256, blake2b-512, blake3-256, whirlpool.
//
// Returns ErrUnsupported (wrapped with the offending name) for anything
// else. Algorithm names are case-sensitive.
func New(name string) (Factory, error) {
	def, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "algorithm %q", name)
	}
	return FromHash(def.newFunc), nil
}

// MustFactory is like New but panics on an unknown name. Intended for
// package-level variables and tests where the name is a compile-time
// constant.
func MustFactory(name string) Factory {
	f, err := New(name)
	if err != nil {
		panic(err)
	}
	return f
}

// Supported returns the registered algorithm names in sorted order.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BlockSize reports the block size in bytes of the named algorithm.
func BlockSize(name string) (int, error) {
	def, ok := registry[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupported, "algorithm %q", name)
	}
	return def.blockSize, nil
}

// DigestSize reports the digest length in bytes of the named algorithm.
func DigestSize(name string) (int, error) {
	def, ok := registry[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupported, "algorithm %q", name)
	}
	return def.digestSize, nil
}
