// Package core picks authenticated ciphers by name for the demo
// transport and the comparative benchmarks.
package core

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/emmansun/gmsm/sm4"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/ronitkumar98/GrainSoft128-AEAD/grainsoft"
)

// ErrCipherNotSupported occurs when a cipher name is not in the list.
var ErrCipherNotSupported = errors.New("cipher not supported")

// KeySizeError means the key does not fit the chosen cipher.
type KeySizeError int

func (e KeySizeError) Error() string {
	return "key size error: need " + strconv.Itoa(int(e)) + " bytes"
}

const (
	aeadGrainsoft        = "GRAINSOFT"
	aeadGrainsoft32      = "GRAINSOFT-32"
	aeadChacha20Poly1305 = "CHACHA20-IETF-POLY1305"
	aeadAes256Gcm        = "AES-256-GCM"
	aeadSm4Gcm           = "SM4-GCM"
)

// List of AEAD ciphers: key size in bytes and constructor. All of them
// take 96-bit nonces, so they are interchangeable on the wire.
var aeadList = map[string]struct {
	KeySize int
	New     func([]byte) (cipher.AEAD, error)
}{
	aeadGrainsoft:        {grainsoft.KeySize, grainsoft.New},
	aeadGrainsoft32:      {grainsoft.KeySize, grainsoft.New32},
	aeadChacha20Poly1305: {chacha20poly1305.KeySize, chacha20poly1305.New},
	aeadAes256Gcm:        {32, aesGCM},
	aeadSm4Gcm:           {16, sm4GCM},
}

func aesGCM(key []byte) (cipher.AEAD, error) {
	blk, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blk)
}

func sm4GCM(key []byte) (cipher.AEAD, error) {
	blk, err := sm4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blk)
}

// ListCipher returns the sorted names of all supported ciphers.
func ListCipher() []string {
	var l []string
	for k := range aeadList {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}

// PickAEAD returns an AEAD of the given name initialized with key.
func PickAEAD(name string, key []byte) (cipher.AEAD, error) {
	name = strings.ToUpper(name)
	if choice, ok := aeadList[name]; ok {
		if len(key) != choice.KeySize {
			return nil, KeySizeError(choice.KeySize)
		}
		return choice.New(key)
	}
	return nil, ErrCipherNotSupported
}
