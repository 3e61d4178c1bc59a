package pwdigest

import (
	"encoding"
	"github.com/minio/sha256-simd"
	"hash"
	"unsafe"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains a Go-specific API implementing the standard hash.Hash interface, for passwords
// that arrive as a stream rather than as a single string.

// Digest accumulates a password written to it in any number of pieces. Its salt and modulus are
// fixed at construction. A Digest is not safe for concurrent use.
type Digest struct {
	salt  []byte
	inner hash.Hash
	mix   mixer
}

var _ hash.Hash = (*Digest)(nil)

func New(opts ...Option) *Digest {
	p := newParams(opts)
	return &Digest{salt: p.salt, inner: sha256.New(), mix: newMixer(p.modulus)}
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return sha256.BlockSize }

func (d *Digest) Write(buf []byte) (int, error) {
	d.mix.update(buf)
	return d.inner.Write(buf)
}

// WriteString writes s without copying it.
func (d *Digest) WriteString(s string) (int, error) {
	return d.Write(strToBytes(s))
}

// Sum appends the raw digest of everything written so far to buf. The Digest itself is left
// untouched, so writing may continue afterwards.
func (d *Digest) Sum(buf []byte) []byte {
	tail := d.mix.appendSum(append(make([]byte, 0, len(d.salt)+4), d.salt...))

	/* The salt and checksum trail the password, so they are written to a copy of the state. */
	h := clone(d.inner)
	h.Write(tail)
	return h.Sum(buf)
}

func (d *Digest) Reset() {
	d.inner.Reset()
	d.mix.reset()
}

func clone(h hash.Hash) hash.Hash {
	state, err := h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic(err)
	}
	c := sha256.New()
	if err = c.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		panic(err)
	}
	return c
}

// strToBytes converts any string into a byte slice without allocating memory; this is safe so long
// as the underlying memory is never modified, which hash.Hash.Write promises.
func strToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
