package pwdigest

import (
	"encoding/hex"
	"hash"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexSum(h hash.Hash) string { return hex.EncodeToString(h.Sum(nil)) }

func TestDigest_MatchesSum(t *testing.T) {
	tests := []struct {
		name     string
		password string
		opts     []Option
	}{
		{"empty", "", nil},
		{"plain", "password", nil},
		{"salted", "password", []Option{WithSalt("salt")}},
		{"modulus", "password", []Option{WithModulus(23)}},
		{"degenerate modulus", "password", []Option{WithModulus(-7)}},
		{"salted with modulus", "пароль", []Option{WithSalt("соль"), WithModulus(1111)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.opts...)
			_, err := io.WriteString(d, tt.password)
			require.NoError(t, err)
			assert.Equal(t, Sum(tt.password, tt.opts...), hexSum(d))
		})
	}
}

func TestDigest_ChunkedWrites(t *testing.T) {
	password := strings.Repeat("correct horse battery staple ", 400)
	want := Sum(password, WithSalt("salt"), WithModulus(1111))

	for _, chunk := range []int{1, 3, 64, 5552, len(password)} {
		d := New(WithSalt("salt"), WithModulus(1111))
		for rem := []byte(password); len(rem) > 0; {
			n := chunk
			if n > len(rem) {
				n = len(rem)
			}
			written, err := d.Write(rem[:n])
			require.NoError(t, err)
			require.Equal(t, n, written)
			rem = rem[n:]
		}
		assert.Equal(t, want, hexSum(d), "chunk %d", chunk)
	}
}

func TestDigest_SumLeavesStateIntact(t *testing.T) {
	d := New(WithSalt("salt"))
	d.WriteString("pass")
	assert.Equal(t, Sum("pass", WithSalt("salt")), hexSum(d))
	assert.Equal(t, Sum("pass", WithSalt("salt")), hexSum(d))

	d.WriteString("word")
	assert.Equal(t, Sum("password", WithSalt("salt")), hexSum(d))
}

func TestDigest_SumAppends(t *testing.T) {
	d := New()
	d.WriteString("password")
	out := d.Sum([]byte("prefix"))
	require.Len(t, out, len("prefix")+Size)
	assert.Equal(t, "prefix", string(out[:6]))
	assert.Equal(t, Sum("password"), hex.EncodeToString(out[6:]))
}

func TestDigest_Reset(t *testing.T) {
	for _, mod := range []int64{DefaultModulus, 23, 0} {
		d := New(WithSalt("salt"), WithModulus(mod))
		d.WriteString("password")
		d.Reset()
		assert.Equal(t, Sum("", WithSalt("salt"), WithModulus(mod)), hexSum(d), "modulus %d", mod)

		d.WriteString("Password")
		assert.Equal(t, Sum("Password", WithSalt("salt"), WithModulus(mod)), hexSum(d), "modulus %d", mod)
	}
}

func TestDigest_Sizes(t *testing.T) {
	d := New()
	assert.Equal(t, 32, d.Size())
	assert.Equal(t, 64, d.BlockSize())
	assert.Len(t, d.Sum(nil), d.Size())
}
