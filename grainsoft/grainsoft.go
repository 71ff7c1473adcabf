// Package grainsoft implements the GrainSoft128-AEAD cipher, a
// Grain-family authenticated stream cipher built from a coupled
// 128-bit LFSR/NFSR pair.
//
// A key, nonce pair must never be reused: the cipher keeps no nonce
// history and cannot detect reuse, so uniqueness is a mandatory caller
// invariant. Each encrypt, decrypt, or keystream session owns its own
// register state; sessions may run in parallel, but a single session
// must not be shared between goroutines.
package grainsoft

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"runtime"
	"strconv"

	"github.com/ronitkumar98/GrainSoft128-AEAD/internal/subtle"
)

const (
	// KeySize is the size in bytes of a GrainSoft128 key.
	KeySize = 128 / 8
	// NonceSize is the size in bytes of a GrainSoft128 nonce.
	NonceSize = 96 / 8
	// TagSize is the size in bytes of the default 64-bit tag.
	TagSize = 64 / 8
	// TagSize32 is the size in bytes of the truncated 32-bit tag.
	TagSize32 = 32 / 8
)

var (
	// ErrKeyLength is returned when a key is not KeySize bytes.
	ErrKeyLength = errors.New("grainsoft: invalid key length")
	// ErrNonceLength is returned when a nonce is not NonceSize bytes.
	ErrNonceLength = errors.New("grainsoft: invalid nonce length")
	// ErrAuth is returned by Open and Decrypt when the recorded tag
	// does not match the recomputed tag. No plaintext is released.
	ErrAuth = errors.New("grainsoft: message authentication failed")
	// ErrUninitialized is returned when a keystream session is used
	// before it has been initialized with a key and nonce.
	ErrUninitialized = errors.New("grainsoft: state used before initialization")
)

type aead struct {
	key    [KeySize]byte
	tagLen int
}

var _ cipher.AEAD = (*aead)(nil)

// New creates a GrainSoft128-AEAD with the default 64-bit tag.
//
// The nonce must be unique for every message sealed under the same key.
func New(key []byte) (cipher.AEAD, error) {
	return newAEAD(key, TagSize)
}

// New32 creates a GrainSoft128-AEAD deployment with the tag truncated
// to 32 bits. Shorter tags trade forgery resistance for overhead; use
// New unless the packet budget demands otherwise.
func New32(key []byte) (cipher.AEAD, error) {
	return newAEAD(key, TagSize32)
}

func newAEAD(key []byte, tagLen int) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrKeyLength
	}
	a := &aead{tagLen: tagLen}
	copy(a.key[:], key)
	return a, nil
}

func (a *aead) NonceSize() int {
	return NonceSize
}

func (a *aead) Overhead() int {
	return a.tagLen
}

func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic("grainsoft: incorrect nonce length: " + strconv.Itoa(len(nonce)))
	}
	var s state
	s.init(a.key[:], nonce)

	ret, out := subtle.SliceForAppend(dst, len(plaintext)+a.tagLen)
	if subtle.InexactOverlap(out, plaintext) {
		panic("grainsoft: invalid buffer overlap")
	}

	s.additionalData(additionalData)
	s.encrypt(out[:len(plaintext)], plaintext)
	s.finalize()
	s.writeTag(out[len(plaintext):])

	return ret
}

func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		panic("grainsoft: incorrect nonce length: " + strconv.Itoa(len(nonce)))
	}
	if len(ciphertext) < a.tagLen {
		return nil, ErrAuth
	}
	var s state
	s.init(a.key[:], nonce)

	tag := ciphertext[len(ciphertext)-a.tagLen:]
	ciphertext = ciphertext[:len(ciphertext)-a.tagLen]

	ret, out := subtle.SliceForAppend(dst, len(ciphertext))
	if subtle.InexactOverlap(out, ciphertext) {
		panic("grainsoft: invalid buffer overlap")
	}

	s.additionalData(additionalData)
	s.decrypt(out, ciphertext)
	s.finalize()

	expectedTag := make([]byte, a.tagLen)
	s.writeTag(expectedTag)

	if subtle.ConstantTimeCompare(expectedTag, tag) != 1 {
		for i := range out {
			out[i] = 0
		}
		runtime.KeepAlive(out)
		return nil, ErrAuth
	}
	return ret, nil
}

// writeTag serializes the accumulator little-endian, truncated to
// len(dst) for short-tag deployments.
func (s *state) writeTag(dst []byte) {
	var t [TagSize]byte
	binary.LittleEndian.PutUint64(t[:], s.acc)
	copy(dst, t[:])
}

// Encrypt seals plaintext under key and nonce, authenticating
// additionalData followed by the ciphertext, and returns the ciphertext
// and the 64-bit tag separately. Key and nonce lengths are validated
// before any cipher state is built.
func Encrypt(key, nonce, additionalData, plaintext []byte) (ciphertext, tag []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, ErrKeyLength
	}
	if len(nonce) != NonceSize {
		return nil, nil, ErrNonceLength
	}
	var s state
	s.init(key, nonce)
	s.additionalData(additionalData)
	ciphertext = make([]byte, len(plaintext))
	s.encrypt(ciphertext, plaintext)
	s.finalize()
	tag = make([]byte, TagSize)
	s.writeTag(tag)
	return ciphertext, tag, nil
}

// Decrypt reverses Encrypt. The recomputed tag is compared against tag
// in constant time; on mismatch no plaintext is released and ErrAuth is
// returned.
func Decrypt(key, nonce, additionalData, ciphertext, tag []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrKeyLength
	}
	if len(nonce) != NonceSize {
		return nil, ErrNonceLength
	}
	var s state
	s.init(key, nonce)
	s.additionalData(additionalData)
	plaintext := make([]byte, len(ciphertext))
	s.decrypt(plaintext, ciphertext)
	s.finalize()

	expectedTag := make([]byte, TagSize)
	s.writeTag(expectedTag)

	if subtle.ConstantTimeCompare(expectedTag, tag) != 1 {
		for i := range plaintext {
			plaintext[i] = 0
		}
		runtime.KeepAlive(plaintext)
		return nil, ErrAuth
	}
	return plaintext, nil
}
