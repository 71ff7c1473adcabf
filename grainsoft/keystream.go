package grainsoft

import "io"

// Keystream is a raw pre-output session: it runs the full
// initialization procedure and then releases every pre-output bit, with
// no XOR path and no authentication cadence. It exists for keystream
// analysis tooling, which consumes the bitstream as ASCII '0'/'1'
// characters.
//
// A Keystream must be created with NewKeystream; the zero value fails
// with ErrUninitialized.
type Keystream struct {
	s     state
	ready bool
}

// NewKeystream initializes a keystream session for key and nonce.
func NewKeystream(key, nonce []byte) (*Keystream, error) {
	if len(key) != KeySize {
		return nil, ErrKeyLength
	}
	if len(nonce) != NonceSize {
		return nil, ErrNonceLength
	}
	var k Keystream
	k.s.init(key, nonce)
	k.ready = true
	return &k, nil
}

// NextBit returns the next raw pre-output bit as 0 or 1.
func (k *Keystream) NextBit() (byte, error) {
	if !k.ready {
		return 0, ErrUninitialized
	}
	return byte(k.s.clock()), nil
}

// ReadBits fills p with ASCII '0' and '1' characters, one per
// pre-output bit, and returns len(p).
func (k *Keystream) ReadBits(p []byte) (int, error) {
	if !k.ready {
		return 0, ErrUninitialized
	}
	for i := range p {
		p[i] = '0' + byte(k.s.clock())
	}
	return len(p), nil
}

// DumpKeystream writes the first nbits post-initialization pre-output
// bits for key and nonce to w as ASCII '0'/'1' characters and nothing
// else.
func DumpKeystream(w io.Writer, key, nonce []byte, nbits int) error {
	k, err := NewKeystream(key, nonce)
	if err != nil {
		return err
	}
	buf := make([]byte, 512)
	for nbits > 0 {
		n := len(buf)
		if nbits < n {
			n = nbits
		}
		k.ReadBits(buf[:n])
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
		nbits -= n
	}
	return nil
}
