// Package drbg provides a deterministic byte stream for reproducible
// sampling. It must never replace crypto/rand outside of tests and
// explicitly seeded CLI runs.
package drbg

import (
	"io"

	"golang.org/x/crypto/blake2b"
)

// Prefix domain-separates the stream from other blake2b uses of the seed.
const Prefix = "reshare-drbg-v1"

// New returns an unbounded stream of bytes derived from seed with the
// blake2b XOF. Equal seeds give equal streams.
func New(seed []byte) io.Reader {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		// only reachable with an oversized key, and no key is used
		panic(err)
	}
	xof.Write([]byte(Prefix))
	xof.Write(seed)
	return xof
}
