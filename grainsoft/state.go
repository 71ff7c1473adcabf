package grainsoft

// state is the register pair and authentication generator of
// GrainSoft128-AEAD.
//
// The pre-output generator has three parts:
//
//  1. a 128-bit LFSR
//  2. a 128-bit non-linear FSR (NFSR)
//  3. a pre-output function
//
// The authenticator generator has two parts:
//
//  1. a 64-bit shift register
//  2. a 64-bit accumulator
//
// Bit 0 of each register is the oldest bit: one clock drops bit 0 and
// shifts a fresh feedback bit in at bit 127. All tap positions below are
// relative to that ordering. Byte strings load MSB first, so register
// bit i holds bit 7-(i mod 8) of byte i/8.
//
// The LFSR is defined by the polynomial over GF(2)
//
//	f(x) = 1 + x^37 + x^71 + x^86 + x^108 + x^121 + x^128
//
// and updated with
//
//	s_127^(t+1) = s_0 + s_7 + s_20 + s_42 + s_57 + s_91
//
// The NFSR feedback is
//
//	b_127^(t+1) = s_0 + b_0 + b_63 + b_95
//	            + b_11*b_13 + b_23*b_25 + b_47*b_49
//
// and the pre-output function is
//
//	y_t = s_3 + b_2 + b_25 + b_46 + s_93 + b_0
//	    + s_64*b_63 + s_10*b_20
//
// A state is exclusively owned by one encrypt, decrypt, or keystream
// session; no internal synchronization is performed.
type state struct {
	// lfsr is the linear register; lfsrLo holds bits 0..63 and
	// lfsrHi bits 64..127.
	lfsrLo, lfsrHi uint64
	// nfsr is the non-linear register, split the same way.
	nfsrLo, nfsrHi uint64
	// acc is the accumulator half of the authentication generator.
	// At finalization acc is the authentication tag.
	acc uint64
	// reg is the shift-register half of the authentication
	// generator, holding the most recent 64 authentication bits.
	reg uint64
}

// initRounds is the number of warm-up clocks run with the pre-output bit
// folded back into both feedbacks. The 128 clocks that load acc and reg
// follow, so 384 pre-output bits are discarded in total before the first
// keystream bit.
const initRounds = 256

// Tap positions. Both the keystream path and the tag path read the
// registers through these constants only.
const (
	lfsrTap0, lfsrTap1, lfsrTap2 = 0, 7, 20
	lfsrTap3, lfsrTap4, lfsrTap5 = 42, 57, 91

	nfsrTap0, nfsrTap1, nfsrTap2 = 0, 63, 95
	nfsrAnd0, nfsrAnd1           = 11, 13
	nfsrAnd2, nfsrAnd3           = 23, 25
	nfsrAnd4, nfsrAnd5           = 47, 49

	outS0, outS1, outS2, outS3 = 3, 64, 93, 10
	outB0, outB1, outB2        = 2, 25, 46
	outB3, outB4               = 63, 20
)

func (s *state) lfsrBit(i uint) uint64 {
	if i < 64 {
		return s.lfsrLo >> i & 1
	}
	return s.lfsrHi >> (i - 64) & 1
}

func (s *state) nfsrBit(i uint) uint64 {
	if i < 64 {
		return s.nfsrLo >> i & 1
	}
	return s.nfsrHi >> (i - 64) & 1
}

// preOutput computes the pre-output bit from the current register
// contents. It is pure and is evaluated strictly before the register
// update of the same clock.
func (s *state) preOutput() uint64 {
	h := s.lfsrBit(outS0) ^
		s.nfsrBit(outB0) ^
		s.nfsrBit(outB1) ^
		s.nfsrBit(outB2) ^
		s.lfsrBit(outS2) ^
		s.lfsrBit(outS1)&s.nfsrBit(outB3) ^
		s.lfsrBit(outS3)&s.nfsrBit(outB4)
	return h ^ s.nfsrBit(0)
}

// feedback computes the incoming bit for each register from the current
// register contents. The NFSR feedback includes s_0, the conventional
// coupling between the two registers.
func (s *state) feedback() (lf, nf uint64) {
	lf = s.lfsrBit(lfsrTap0) ^
		s.lfsrBit(lfsrTap1) ^
		s.lfsrBit(lfsrTap2) ^
		s.lfsrBit(lfsrTap3) ^
		s.lfsrBit(lfsrTap4) ^
		s.lfsrBit(lfsrTap5)
	nf = s.nfsrBit(nfsrTap0) ^
		s.nfsrBit(nfsrTap1) ^
		s.nfsrBit(nfsrTap2) ^
		s.nfsrBit(nfsrAnd0)&s.nfsrBit(nfsrAnd1) ^
		s.nfsrBit(nfsrAnd2)&s.nfsrBit(nfsrAnd3) ^
		s.nfsrBit(nfsrAnd4)&s.nfsrBit(nfsrAnd5) ^
		s.lfsrBit(0)
	return lf, nf
}

// shift advances both registers by one position, dropping bit 0 and
// inserting the feedback bits at bit 127.
func (s *state) shift(lf, nf uint64) {
	s.lfsrLo = s.lfsrLo>>1 | s.lfsrHi<<63
	s.lfsrHi = s.lfsrHi>>1 | lf<<63
	s.nfsrLo = s.nfsrLo>>1 | s.nfsrHi<<63
	s.nfsrHi = s.nfsrHi>>1 | nf<<63
}

// clock advances both registers by one bit position and returns the
// pre-output bit.
func (s *state) clock() uint64 {
	z := s.preOutput()
	lf, nf := s.feedback()
	s.shift(lf, nf)
	return z
}

// clockInit is clock during warm-up: the pre-output bit is XORed into
// both feedbacks and never released.
func (s *state) clockInit() {
	z := s.preOutput()
	lf, nf := s.feedback()
	s.shift(lf^z, nf^z)
}

// init loads key and nonce and runs the full initialization procedure:
// warm-up followed by the authentication register pre-load.
func (s *state) init(key, nonce []byte) {
	*s = state{}

	for i := uint(0); i < 8*NonceSize; i++ {
		b := uint64(nonce[i/8]>>(7-i%8)) & 1
		if i < 64 {
			s.lfsrLo |= b << i
		} else {
			s.lfsrHi |= b << (i - 64)
		}
	}
	// Bits 96..127 of the LFSR are the all-ones nonce padding.
	s.lfsrHi |= 0xffffffff00000000

	for i := uint(0); i < 8*KeySize; i++ {
		b := uint64(key[i/8]>>(7-i%8)) & 1
		if i < 64 {
			s.nfsrLo |= b << i
		} else {
			s.nfsrHi |= b << (i - 64)
		}
	}

	for i := 0; i < initRounds; i++ {
		s.clockInit()
	}
	for i := uint(0); i < 64; i++ {
		s.acc |= s.clock() << i
	}
	for i := uint(0); i < 64; i++ {
		s.reg |= s.clock() << i
	}
}

// step pushes one message bit through the keystream/authentication
// cadence and returns the keystream bit. Every message bit consumes two
// clocks: the first pre-output bit keys the stream, the second feeds the
// authentication register. The shift register is folded into the
// accumulator before the authentication bit is shifted in.
func (s *state) step(m uint64) uint64 {
	zk := s.clock()
	za := s.clock()
	if m != 0 {
		s.acc ^= s.reg
	}
	s.reg = s.reg>>1 | za<<63
	return zk
}

// encryptBit is step for the encrypt direction, where the authenticated
// message bit is the ciphertext bit and so depends on the keystream bit.
func (s *state) encryptBit(p uint64) uint64 {
	zk := s.clock()
	za := s.clock()
	c := p ^ zk
	if c != 0 {
		s.acc ^= s.reg
	}
	s.reg = s.reg>>1 | za<<63
	return c
}

// additionalData authenticates ad without producing ciphertext. The
// keystream bit of each cadence is discarded.
func (s *state) additionalData(ad []byte) {
	for _, v := range ad {
		for j := 7; j >= 0; j-- {
			s.step(uint64(v>>uint(j)) & 1)
		}
	}
}

func (s *state) encrypt(dst, src []byte) {
	for i, v := range src {
		var c byte
		for j := 7; j >= 0; j-- {
			c = c<<1 | byte(s.encryptBit(uint64(v>>uint(j))&1))
		}
		dst[i] = c
	}
}

func (s *state) decrypt(dst, src []byte) {
	for i, v := range src {
		var p byte
		for j := 7; j >= 0; j-- {
			cb := uint64(v>>uint(j)) & 1
			p = p<<1 | byte(s.step(cb)^cb)
		}
		dst[i] = p
	}
}

// finalize folds the all-ones virtual final message bit into the
// accumulator. No message bit may be processed afterwards.
func (s *state) finalize() {
	s.step(1)
}
