package grainsoft

import (
	"bytes"
	"testing"
)

func TestPacketRoundTrip(t *testing.T) {
	key := unhex(t, testKey)
	nonce := unhex(t, testNonce)

	aead, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	sealed := aead.Seal(nil, nonce, []byte("payload"), nil)
	pkt := PackPacket(nil, nonce, sealed)

	gotNonce, gotSealed, err := UnpackPacket(pkt)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotNonce, nonce) || !bytes.Equal(gotSealed, sealed) {
		t.Fatalf("unpack mismatch: nonce %x, sealed %x", gotNonce, gotSealed)
	}
	pt, err := aead.Open(nil, gotNonce, gotSealed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(pt) != "payload" {
		t.Fatalf("expected %q, got %q", "payload", pt)
	}
}

func TestPacketTooShort(t *testing.T) {
	if _, _, err := UnpackPacket(make([]byte, NonceSize+TagSize32-1)); err != ErrShortPacket {
		t.Fatalf("expected ErrShortPacket, got %v", err)
	}
	if _, _, err := UnpackPacket(nil); err != ErrShortPacket {
		t.Fatalf("expected ErrShortPacket, got %v", err)
	}
}
