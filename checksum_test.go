package pwdigest

import (
	"hash/adler32"
	"testing"

	stackadler32 "github.com/m3db/stackadler32"
	"github.com/stretchr/testify/assert"
)

var checksumInputs = [][]byte{
	nil,
	[]byte(""),
	[]byte(" "),
	[]byte("password"),
	[]byte("Wikipedia"),
	[]byte("пароль"),
	make([]byte, 6000), /* Longer than zlib's 5552-byte NMAX batch. */
	func() []byte {
		b := make([]byte, 100000)
		for i := range b {
			b[i] = 0xff
		}
		return b
	}(),
}

// generic runs the general loop even at the canonical modulus.
func generic(p []byte, mod int64) uint32 {
	m := mixer{mod: uint64(mod), a: 1}
	m.update(p)
	return m.sum32()
}

func TestChecksum_CanonicalModulus(t *testing.T) {
	for _, p := range checksumInputs {
		want := adler32.Checksum(p)
		assert.Equal(t, want, checksum(p, DefaultModulus), "len %d", len(p))
		assert.Equal(t, want, stackadler32.Checksum(p), "len %d", len(p))
		assert.Equal(t, want, generic(p, DefaultModulus), "len %d", len(p))
	}
	assert.Equal(t, uint32(0x11e60398), checksum([]byte("Wikipedia"), DefaultModulus))
}

func TestChecksum_Generalized(t *testing.T) {
	assert.Equal(t, uint32(0x028c0374), checksum([]byte("password"), 1111))
	assert.Equal(t, uint32(0x0006000a), checksum([]byte("password"), 23))
	assert.Equal(t, uint32(0x00020002), checksum([]byte("password"), 7))

	/* Sums that never reach the modulus are left unreduced. */
	assert.Equal(t, checksum([]byte("password"), DefaultModulus), checksum([]byte("password"), 1<<63-1))

	/* Only the low 16 bits of each sum survive, as in Adler-32. */
	for _, mod := range []int64{1 << 17, 1<<32 + 15, 1<<63 - 1} {
		p := checksumInputs[len(checksumInputs)-1]
		sum := checksum(p, mod)
		m := newMixer(mod)
		m.update(p)
		assert.Equal(t, uint32(m.b&0xffff)<<16|uint32(m.a&0xffff), sum)
		assert.Less(t, m.a, uint64(mod))
		assert.Less(t, m.b, uint64(mod))
	}
}

func TestChecksum_Degenerate(t *testing.T) {
	for _, mod := range []int64{1, 0, -1, -23, -1 << 63} {
		for _, p := range checksumInputs {
			assert.Zero(t, checksum(p, mod), "modulus %d, len %d", mod, len(p))
		}
	}
}

func TestMixer_Incremental(t *testing.T) {
	p := []byte("the quick brown fox jumps over the lazy dog, twice: the quick brown fox")
	for _, mod := range []int64{DefaultModulus, 1111, 23, 2, 1, 0, -5} {
		want := checksum(p, mod)
		for split := 0; split <= len(p); split += 7 {
			m := newMixer(mod)
			m.update(p[:split])
			m.update(p[split:])
			assert.Equal(t, want, m.sum32(), "modulus %d, split %d", mod, split)
		}
	}
}

func TestMixer_Reset(t *testing.T) {
	for _, mod := range []int64{DefaultModulus, 1111, 0} {
		m := newMixer(mod)
		m.update([]byte("password"))
		m.reset()
		assert.Equal(t, newMixer(mod), m, "modulus %d", mod)
		assert.Equal(t, checksum(nil, mod), m.sum32())
	}
}

func TestMixer_AppendSum(t *testing.T) {
	m := newMixer(DefaultModulus)
	m.update([]byte("password"))
	assert.Equal(t, []byte{'x', 0x0f, 0x91, 0x03, 0x74}, m.appendSum([]byte{'x'}))
}

func TestMixer_CanonicalDigest(t *testing.T) {
	m := newMixer(DefaultModulus)
	assert.True(t, m.fast)
	for _, p := range checksumInputs {
		m.update(p)
	}
	d := stackadler32.NewDigest()
	for _, p := range checksumInputs {
		d = d.Update(p)
	}
	assert.Equal(t, d, m.sum)
	assert.Equal(t, d.Sum32(), m.sum32())
}
