// Package nonceguard remembers recently seen nonces so a server can
// reject replayed packets. The cipher core keeps no nonce history by
// design; this guard is a transport-side safety net, and a false
// positive only costs a retry under a fresh nonce.
package nonceguard

import (
	"hash/fnv"
	"sync"

	"github.com/riobard/go-bloom"
)

// Defaults sized for a long-running demo server.
const (
	DefaultSlots    = 10
	DefaultCapacity = 1e6
	DefaultFPR      = 1e-6
)

// simply use double FNV here as the Bloom Filter hash
func doubleFNV(b []byte) (uint64, uint64) {
	hx := fnv.New64()
	hx.Write(b)
	x := hx.Sum64()
	hy := fnv.New64a()
	hy.Write(b)
	y := hy.Sum64()
	return x, y
}

// Ring is a ring of Bloom filter slots. Filling a slot rotates the ring
// and resets the oldest slot, bounding memory while keeping the most
// recent nonces queryable.
type Ring struct {
	slotCapacity int
	slotPosition int
	slotCount    int
	entryCounter int
	slots        []bloom.Filter
	mu           sync.RWMutex
}

// NewRing creates a Ring of slot filters holding capacity nonces in
// total at the given false-positive rate.
func NewRing(slot, capacity int, falsePositiveRate float64) *Ring {
	r := &Ring{
		slotCapacity: capacity / slot,
		slotCount:    slot,
		slots:        make([]bloom.Filter, slot),
	}
	for i := 0; i < slot; i++ {
		r.slots[i] = bloom.New(r.slotCapacity, falsePositiveRate, doubleFNV)
	}
	return r
}

// Add records a nonce.
func (r *Ring) Add(nonce []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(nonce)
}

// Test reports whether a nonce may have been recorded before.
func (r *Ring) Test(nonce []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.test(nonce)
}

// Seen atomically tests and records a nonce, reporting whether it was
// already present.
func (r *Ring) Seen(nonce []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.test(nonce) {
		return true
	}
	r.add(nonce)
	return false
}

func (r *Ring) add(nonce []byte) {
	slot := r.slots[r.slotPosition]
	if r.entryCounter > r.slotCapacity {
		r.slotPosition = (r.slotPosition + 1) % r.slotCount
		slot = r.slots[r.slotPosition]
		slot.Reset()
		r.entryCounter = 0
	}
	r.entryCounter++
	slot.Add(nonce)
}

func (r *Ring) test(nonce []byte) bool {
	for _, s := range r.slots {
		if s.Test(nonce) {
			return true
		}
	}
	return false
}
