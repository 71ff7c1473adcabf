package grainsoft

import (
	"bytes"
	"strings"
	"testing"
)

// Raw pre-output prefixes from the reference model. These also pin the
// warm-up length: initializing with any other round count produces a
// different bitstream.
var keystreamVectors = []struct {
	key, nonce string
	bits       string
	stream     string
}{
	{
		key:   "00000000000000000000000000000000",
		nonce: "000000000000000000000000",
		bits: "1010110111101101101100100000011111010000010110111010001011110100" +
			"1110011100101001100000111110101100011100011001011000100010000100",
		stream: "adedb207d05ba2f4e72983eb1c658884",
	},
	{
		key:   "000102030405060708090a0b0c0d0e0f",
		nonce: "000102030405060708090a0b",
		bits: "1100010101011110100000111110111110001110001100111100001110011000" +
			"1010100101101110100111010000100010110010100001000001101110000100",
		stream: "c55e83ef8e33c398a96e9d08b2841b84",
	},
}

func TestKeystreamVectors(t *testing.T) {
	for _, tc := range keystreamVectors {
		key := unhex(t, tc.key)
		nonce := unhex(t, tc.nonce)

		var buf bytes.Buffer
		if err := DumpKeystream(&buf, key, nonce, len(tc.bits)); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != tc.bits {
			t.Fatalf("key %s: expected %s, got %s", tc.key, tc.bits, got)
		}

		// The same bits, packed MSB first.
		ks, err := NewKeystream(key, nonce)
		if err != nil {
			t.Fatal(err)
		}
		stream := make([]byte, len(tc.stream)/2)
		for i := range stream {
			var v byte
			for j := 0; j < 8; j++ {
				b, err := ks.NextBit()
				if err != nil {
					t.Fatal(err)
				}
				v = v<<1 | b
			}
			stream[i] = v
		}
		if want := unhex(t, tc.stream); !bytes.Equal(stream, want) {
			t.Fatalf("key %s: expected %x, got %x", tc.key, want, stream)
		}
	}
}

func TestKeystreamDeterminism(t *testing.T) {
	key := unhex(t, testKey)
	nonce := unhex(t, testNonce)

	a, err := NewKeystream(key, nonce)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewKeystream(key, nonce)
	if err != nil {
		t.Fatal(err)
	}
	pa := make([]byte, 4096)
	pb := make([]byte, 4096)
	if _, err := a.ReadBits(pa); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReadBits(pb); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pa, pb) {
		t.Fatal("independent sessions with the same key and nonce diverged")
	}
	if i := strings.IndexFunc(string(pa), func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		t.Fatalf("dump contains non-bit character at %d: %q", i, pa[i])
	}
}

func TestKeystreamUninitialized(t *testing.T) {
	var k Keystream
	if _, err := k.NextBit(); err != ErrUninitialized {
		t.Fatalf("expected ErrUninitialized, got %v", err)
	}
	if _, err := k.ReadBits(make([]byte, 8)); err != ErrUninitialized {
		t.Fatalf("expected ErrUninitialized, got %v", err)
	}
	if _, err := NewKeystream(make([]byte, 1), make([]byte, NonceSize)); err != ErrKeyLength {
		t.Fatalf("expected ErrKeyLength, got %v", err)
	}
	if err := DumpKeystream(&bytes.Buffer{}, make([]byte, KeySize), nil, 8); err != ErrNonceLength {
		t.Fatalf("expected ErrNonceLength, got %v", err)
	}
}
