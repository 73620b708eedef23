package hmac

import (
	"github.com/forcebit/hmac-streaming-rfc2104-go/pkg/primitive"
)

// HMAC pad constants, RFC 2104 Section 2.
const (
	ipadByte = 0x36
	opadByte = 0x5c
)

// keyBlocks owns the three contiguous block-sized key derivations HMAC
// needs: the raw (zero-padded or pre-hashed) key, the key XORed with
// ipad, and the key XORed with opad. All three live in one buffer that
// is allocated once per session and reused across rekeys.
type keyBlocks struct {
	// buf layout: raw | ipad | opad, each blockSize bytes.
	buf       []byte
	blockSize int

	// keyLen is the effective key length inside the raw block: the
	// original key length, or the digest size when the key was
	// compressed.
	keyLen int
}

func newKeyBlocks(blockSize int) *keyBlocks {
	return &keyBlocks{
		buf:       make([]byte, 3*blockSize),
		blockSize: blockSize,
	}
}

func (kb *keyBlocks) raw() []byte  { return kb.buf[:kb.blockSize] }
func (kb *keyBlocks) ipad() []byte { return kb.buf[kb.blockSize : 2*kb.blockSize] }
func (kb *keyBlocks) opad() []byte { return kb.buf[2*kb.blockSize:] }

// set derives the three key blocks from key, reusing the existing
// buffer. Keys longer than the block size are compressed through one
// full pass of p first (RFC 2104 Section 2). The raw block's tail is
// always rewritten, so no bytes of a previous, longer key survive into
// the pad derivation. p is left reset.
func (kb *keyBlocks) set(p primitive.Primitive, key []byte) {
	raw := kb.raw()

	var n int
	if len(key) > kb.blockSize {
		p.Reset()
		p.Absorb(key)
		digest := p.Finalize()
		n = copy(raw, digest)
		zero(digest)
	} else {
		n = copy(raw, key)
	}
	zero(raw[n:])
	kb.keyLen = n

	ipad, opad := kb.ipad(), kb.opad()
	for i, b := range raw {
		ipad[i] = b ^ ipadByte
		opad[i] = b ^ opadByte
	}

	// A key-compression pass must not contaminate subsequent use.
	p.Reset()
}

// key returns a copy of the effective key: the raw block truncated to
// the original (or compressed) key length.
func (kb *keyBlocks) key() []byte {
	out := make([]byte, kb.keyLen)
	copy(out, kb.raw())
	return out
}

// zeroize clears the whole buffer, raw key and both pads.
func (kb *keyBlocks) zeroize() {
	zero(kb.buf)
	kb.keyLen = 0
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
