package pwdigest

import (
	"encoding/binary"
	stackadler32 "github.com/m3db/stackadler32"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The checksum mixer: Adler-32 as defined in RFC 1950, generalized to any modulus. Its output
// perturbs the buffer handed to the compressor so that the modulus, and not only the password and
// salt, determines the digest.

// DefaultModulus is the largest prime below 2^16 and the modulus of canonical Adler-32.
const DefaultModulus = 65521

type mixer struct {
	mod  uint64
	a, b uint64
	sum  stackadler32.Digest /* Canonical-modulus state */
	fast bool
}

func newMixer(mod int64) mixer {
	switch {
	case mod == DefaultModulus:
		return mixer{sum: stackadler32.NewDigest(), fast: true}
	case mod <= 1:
		/* Every residue modulo 1 is 0, and no residue system exists below it; both collapse to
		the constant 0. */
		return mixer{}
	default:
		return mixer{mod: uint64(mod), a: 1}
	}
}

// update folds p into the running sums. Accumulators are reduced after every byte; with a < mod
// and mod < 2^63, neither a+255 nor b+a can overflow 64 bits.
func (m *mixer) update(p []byte) {
	if m.fast {
		m.sum = m.sum.Update(p)
		return
	}
	if m.mod == 0 {
		return
	}
	a, b, mod := m.a, m.b, m.mod
	for _, c := range p {
		a = (a + uint64(c)) % mod
		b = (b + a) % mod
	}
	m.a, m.b = a, b
}

// sum32 maps the sums onto 32 bits exactly as Adler-32 does: b in the upper half, a in the lower.
func (m *mixer) sum32() uint32 {
	if m.fast {
		return m.sum.Sum32()
	}
	return uint32(m.b&0xffff)<<16 | uint32(m.a&0xffff)
}

func (m *mixer) appendSum(buf []byte) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], m.sum32())
	return append(buf, tmp[:]...)
}

func (m *mixer) reset() { *m = newMixer(m.modulus()) }

func (m *mixer) modulus() int64 {
	switch {
	case m.fast:
		return DefaultModulus
	case m.mod == 0:
		return 0
	default:
		return int64(m.mod)
	}
}

func checksum(p []byte, mod int64) uint32 {
	m := newMixer(mod)
	m.update(p)
	return m.sum32()
}
