package main

import (
	"encoding/binary"
	"encoding/hex"
	. "fmt"
	"github.com/aead/chacha20/chacha"
	"github.com/p7r0x7/pwdigest"
	"math/big"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

// meanBias is the mean distance, as a percentage of the ideal, of each output bit's tally of ones
// from half the sample count. An unbiased digest scores close to 0.
func meanBias(digests []*big.Int, ln int) float64 {
	if len(digests) == 0 {
		return 0
	}
	tally := make([]int64, ln)
	for _, d := range digests {
		for i := ln - 1; i >= 0; i-- {
			tally[i] += int64(d.Bit(i))
		}
	}
	count := int64(len(digests))
	var total int64
	for _, t := range tally {
		/* Doubled to stay in integers: |2t - n| = 2|t - n/2|. */
		if t = 2*t - count; t < 0 {
			total -= t
		} else {
			total += t
		}
	}
	return float64(total) / float64(ln) / float64(count) * 100
}

// stream is a reproducible source of pseudo-random bytes: the 8-round ChaCha keystream of a fixed
// key derived from seed. Samples drawn from it are identical on every run and every platform.
type stream struct {
	c *chacha.Cipher
}

func newStream(seed uint64) *stream {
	var key [32]byte
	var nonce [chacha.NonceSize]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	c, err := chacha.NewCipher(nonce[:], key[:], 8)
	if err != nil {
		panic(err) /* Key and nonce sizes are constant. */
	}
	return &stream{c}
}

func (s *stream) fill(b []byte) {
	for i := range b {
		b[i] = 0
	}
	s.c.XORKeyStream(b, b)
}

func toInt(digest string) *big.Int {
	raw, _ := hex.DecodeString(digest)
	return new(big.Int).SetBytes(raw)
}

// monobit hashes three families of closely related inputs and reports how far each family's
// digests stray from an even split of ones and zeroes per bit.
func monobit() {
	const ln = pwdigest.Size * 8
	integers := make([]*big.Int, 0, ints)
	random := make([]*big.Int, 0, ints)
	moduli := make([]*big.Int, 0, ints)

	iBytes, rBytes, src := make([]byte, 4), make([]byte, 16), newStream(0)
	/* The sweep password's sums must exceed every modulus tried; beyond them the checksum, and so
	the digest, stops changing. */
	sweep := make([]byte, 1<<10)
	newStream(1).fill(sweep)
	for i := ints; i > 0; i-- {
		binary.BigEndian.PutUint32(iBytes, i)
		integers = append(integers, toInt(pwdigest.Sum(string(iBytes))))

		src.fill(rBytes)
		random = append(random, toInt(pwdigest.Sum(string(rBytes), pwdigest.WithSalt("statz"))))

		moduli = append(moduli, toInt(pwdigest.Sum(string(sweep), pwdigest.WithModulus(int64(i)+1))))
	}
	Printf("Integer input Monobit test:  %5.3f%%\n", meanBias(integers, ln))
	Printf("Random input Monobit test:   %5.3f%%\n", meanBias(random, ln))
	Printf("Modulus sweep Monobit test:  %5.3f%%\n", meanBias(moduli, ln))
}
