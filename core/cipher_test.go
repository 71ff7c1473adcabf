package core

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestPickAEADRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(0x6742))
	pt := []byte("interoperability round trip")
	ad := []byte("frame header")

	for _, name := range ListCipher() {
		t.Run(name, func(t *testing.T) {
			size := aeadList[name].KeySize
			key := make([]byte, size)
			rng.Read(key)

			aead, err := PickAEAD(name, key)
			if err != nil {
				t.Fatal(err)
			}
			if aead.NonceSize() != 12 {
				t.Fatalf("expected 96-bit nonce, got %d bytes", aead.NonceSize())
			}
			nonce := make([]byte, aead.NonceSize())
			rng.Read(nonce)

			sealed := aead.Seal(nil, nonce, pt, ad)
			got, err := aead.Open(nil, nonce, sealed, ad)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, pt) {
				t.Fatalf("expected %q, got %q", pt, got)
			}
		})
	}
}

func TestPickAEADErrors(t *testing.T) {
	if _, err := PickAEAD("no-such-cipher", make([]byte, 16)); err != ErrCipherNotSupported {
		t.Fatalf("expected ErrCipherNotSupported, got %v", err)
	}
	_, err := PickAEAD("grainsoft", make([]byte, 17))
	if _, ok := err.(KeySizeError); !ok {
		t.Fatalf("expected KeySizeError, got %v", err)
	}
}

func TestPickAEADCaseInsensitive(t *testing.T) {
	if _, err := PickAEAD("GrainSoft", make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
}

func benchmarkAEAD(b *testing.B, name string) {
	key := make([]byte, aeadList[name].KeySize)
	aead, err := PickAEAD(name, key)
	if err != nil {
		b.Fatal(err)
	}
	nonce := make([]byte, aead.NonceSize())
	pt := make([]byte, 1024)
	dst := make([]byte, 0, len(pt)+aead.Overhead())
	b.SetBytes(int64(len(pt)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = aead.Seal(dst[:0], nonce, pt, nil)
	}
}

func BenchmarkGrainsoft(b *testing.B)        { benchmarkAEAD(b, aeadGrainsoft) }
func BenchmarkChacha20Poly1305(b *testing.B) { benchmarkAEAD(b, aeadChacha20Poly1305) }
func BenchmarkAes256Gcm(b *testing.B)        { benchmarkAEAD(b, aeadAes256Gcm) }
func BenchmarkSm4Gcm(b *testing.B)           { benchmarkAEAD(b, aeadSm4Gcm) }
