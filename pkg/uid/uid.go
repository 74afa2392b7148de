package uid

import (
	"crypto/rand"
	"math/big"
)

const roomIDLength = 8

// URL-safe, no lookalike pairs (0/O, 1/I/l).
const roomIDAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomID generates a short identifier suitable for share links.
func RoomID() string {
	max := big.NewInt(int64(len(roomIDAlphabet)))
	out := make([]byte, roomIDLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken.
			panic(err)
		}
		out[i] = roomIDAlphabet[n.Int64()]
	}
	return string(out)
}
