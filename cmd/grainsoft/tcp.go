package main

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"net"

	"github.com/ronitkumar98/GrainSoft128-AEAD/grainsoft"
	"github.com/ronitkumar98/GrainSoft128-AEAD/internal/nonceguard"
)

// Wire format: each frame is a 2-byte big-endian length followed by the
// packet nonce || ciphertext || tag. Framing is the transport's concern;
// the packet layout is the cipher's.

var errNonceReplay = errors.New("nonce replayed")

func readFrame(r io.Reader) ([]byte, error) {
	var l [2]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return nil, err
	}
	p := make([]byte, binary.BigEndian.Uint16(l[:]))
	if _, err := io.ReadFull(r, p); err != nil {
		return nil, err
	}
	return p, nil
}

func writeFrame(w io.Writer, p []byte) error {
	if len(p) > math.MaxUint16 {
		return errors.New("frame too large")
	}
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(p)))
	if _, err := w.Write(l[:]); err != nil {
		return err
	}
	_, err := w.Write(p)
	return err
}

func sealPacket(aead cipher.AEAD, payload []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := aead.Seal(nil, nonce, payload, nil)
	return grainsoft.PackPacket(nil, nonce, sealed), nil
}

func openPacket(aead cipher.AEAD, guard *nonceguard.Ring, pkt []byte) ([]byte, error) {
	nonce, sealed, err := grainsoft.UnpackPacket(pkt)
	if err != nil {
		return nil, err
	}
	if guard != nil && guard.Seen(nonce) {
		return nil, errNonceReplay
	}
	return aead.Open(nil, nonce, sealed, nil)
}

// runServer echoes every verified payload back upper-cased, sealed
// under a fresh nonce. Replayed nonces are dropped.
func runServer(addr string, aead cipher.AEAD) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logf("listening on %s", addr)
	guard := nonceguard.NewRing(nonceguard.DefaultSlots, nonceguard.DefaultCapacity, nonceguard.DefaultFPR)
	for {
		c, err := l.Accept()
		if err != nil {
			logf("accept: %v", err)
			continue
		}
		go func(c net.Conn) {
			defer c.Close()
			logf("connection from %s", c.RemoteAddr())
			for {
				pkt, err := readFrame(c)
				if err != nil {
					if err != io.EOF {
						logf("read from %s: %v", c.RemoteAddr(), err)
					}
					return
				}
				payload, err := openPacket(aead, guard, pkt)
				if err != nil {
					logf("drop packet from %s: %v", c.RemoteAddr(), err)
					return
				}
				reply, err := sealPacket(aead, bytes.ToUpper(payload))
				if err != nil {
					logf("seal reply for %s: %v", c.RemoteAddr(), err)
					return
				}
				if err := writeFrame(c, reply); err != nil {
					logf("write to %s: %v", c.RemoteAddr(), err)
					return
				}
			}
		}(c)
	}
}

// runClient seals one message, sends it, and prints the verified reply.
func runClient(addr string, aead cipher.AEAD, msg []byte) error {
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer c.Close()

	pkt, err := sealPacket(aead, msg)
	if err != nil {
		return err
	}
	logf("sending %d-byte packet to %s", len(pkt), addr)
	if err := writeFrame(c, pkt); err != nil {
		return err
	}
	reply, err := readFrame(c)
	if err != nil {
		return err
	}
	payload, err := openPacket(aead, nil, reply)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", payload)
	return nil
}
