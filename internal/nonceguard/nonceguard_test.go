package nonceguard_test

import (
	"encoding/binary"
	"testing"

	"github.com/ronitkumar98/GrainSoft128-AEAD/internal/nonceguard"
)

func nonce(i int) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b[8:], uint32(i))
	return b
}

func TestRingSeen(t *testing.T) {
	r := nonceguard.NewRing(nonceguard.DefaultSlots, nonceguard.DefaultCapacity, nonceguard.DefaultFPR)
	if r.Seen(nonce(1)) {
		t.Fatal("fresh nonce reported as seen")
	}
	if !r.Seen(nonce(1)) {
		t.Fatal("replayed nonce not detected")
	}
	if r.Test(nonce(2)) {
		t.Fatal("untouched nonce reported as seen")
	}
}

func TestRingRotation(t *testing.T) {
	// Tiny ring: overfilling every slot must still leave the guard
	// usable and remembering recent entries.
	r := nonceguard.NewRing(2, 10, 0.01)
	for i := 0; i < 100; i++ {
		r.Add(nonce(i))
	}
	if !r.Test(nonce(99)) {
		t.Fatal("most recent nonce forgotten")
	}
}

func BenchmarkRingSeen(b *testing.B) {
	r := nonceguard.NewRing(nonceguard.DefaultSlots, nonceguard.DefaultCapacity, nonceguard.DefaultFPR)
	n := nonce(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		binary.BigEndian.PutUint64(n[:8], uint64(i))
		r.Seen(n)
	}
}
