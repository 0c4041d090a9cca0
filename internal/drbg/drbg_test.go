package drbg

import (
	"bytes"
	"io"
	"testing"
)

func TestDeterministic(t *testing.T) {
	read := func(seed string, n int) []byte {
		buf := make([]byte, n)
		if _, err := io.ReadFull(New([]byte(seed)), buf); err != nil {
			t.Fatal(err)
		}
		return buf
	}

	a := read("seed", 256)
	if !bytes.Equal(a, read("seed", 256)) {
		t.Error("same seed produced different streams")
	}
	if bytes.Equal(a, read("other", 256)) {
		t.Error("different seeds produced the same stream")
	}
	if !bytes.Equal(a[:64], read("seed", 64)) {
		t.Error("stream must not depend on the read length")
	}
}
