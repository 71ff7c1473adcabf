package grainsoft

import "errors"

// ErrShortPacket is returned when a wire packet is too short to hold a
// nonce and a tag.
var ErrShortPacket = errors.New("grainsoft: short packet")

// PackPacket appends the wire triple nonce || ciphertext || tag to dst
// and returns the result. sealed is the Seal output, which already
// carries the tag; framing (length prefixing) is the transport's job.
func PackPacket(dst, nonce, sealed []byte) []byte {
	dst = append(dst, nonce...)
	return append(dst, sealed...)
}

// UnpackPacket splits a wire packet into its nonce and sealed
// ciphertext || tag parts. Authenticity is established only by a
// subsequent Open.
func UnpackPacket(pkt []byte) (nonce, sealed []byte, err error) {
	if len(pkt) < NonceSize+TagSize32 {
		return nil, nil, ErrShortPacket
	}
	return pkt[:NonceSize], pkt[NonceSize:], nil
}
