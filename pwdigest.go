package pwdigest

import (
	"encoding/hex"
	"github.com/minio/sha256-simd"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file is the reference Go implementation of the pwdigest password-digest function. A digest
// is SHA-256 over the password, the salt, and an Adler-32-style checksum of the password computed
// under a caller-chosen modulus, rendered as 64 lowercase hexadecimal characters.
//
// Strings are hashed as the bytes they hold, which for Go source and most I/O is UTF-8; no Unicode
// normalization is applied. The same (password, salt, modulus) always yields the same digest.

// Size is the length of a digest in bytes; its hexadecimal form is twice as long.
const Size = sha256.Size

// Option customizes Sum and New.
type Option func(*params)

type params struct {
	salt    []byte
	modulus int64
}

// WithSalt mixes salt into the digest. The empty salt is the same as no salt at all.
func WithSalt(salt string) Option {
	return func(p *params) { p.salt = []byte(salt) }
}

// WithModulus sets the modulus of the checksum mixer. Any value is accepted; moduli of 1 or less
// reduce the checksum to a constant.
func WithModulus(modulus int64) Option {
	return func(p *params) { p.modulus = modulus }
}

// GetHash returns the digest of password, salted with salt and checksummed under modulus. A nil
// salt means no salt and is equivalent to "". A nil modulus means DefaultModulus. A nil password
// is the only error: ErrInvalidArgument, reported before any work is done.
func GetHash(password, salt *string, modulus *int64) (string, error) {
	pw, s, mod, err := normalize(password, salt, modulus)
	if err != nil {
		return "", err
	}
	return digest(pw, s, mod), nil
}

// Sum is GetHash for a password that is known to be present.
func Sum(password string, opts ...Option) string {
	p := newParams(opts)
	return digest([]byte(password), p.salt, p.modulus)
}

func newParams(opts []Option) params {
	p := params{modulus: DefaultModulus}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NORMALIZATION
func normalize(password, salt *string, modulus *int64) (pw, s []byte, mod int64, err error) {
	if password == nil {
		return nil, nil, 0, nullArgument("password")
	}
	pw = []byte(*password)

	/* An absent salt and an empty one must hash identically, so both become a zero-length slice
	here rather than relying on how the buffer is later assembled. */
	s = []byte{}
	if salt != nil && *salt != "" {
		s = []byte(*salt)
	}

	mod = DefaultModulus
	if modulus != nil {
		mod = *modulus
	}
	return pw, s, mod, nil
}

// DIGEST FORMATION
func digest(pw, salt []byte, mod int64) string {
	m := newMixer(mod)
	m.update(pw)

	/* Buffer layout: password ‖ salt ‖ checksum (4 bytes, big-endian). */
	buf := make([]byte, 0, len(pw)+len(salt)+4)
	buf = append(buf, pw...)
	buf = append(buf, salt...)
	buf = m.appendSum(buf)

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
