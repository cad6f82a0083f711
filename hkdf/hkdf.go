// Package hkdf implements HKDF-SHA512 per RFC 5869, keeping every HMAC
// intermediate in a struct that is zeroized between and after use.
package hkdf

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"

	"github.com/memparanoid/redoubt/zeroize"
)

const (
	blockLen      = 128 // SHA-512 block size
	hashLen       = 64  // SHA-512 digest size
	maxOutputLen  = 255 * hashLen
)

// ErrOutputTooLong is returned when the requested output exceeds 255
// hash lengths, per RFC 5869.
var ErrOutputTooLong = errors.New("hkdf: requested output too long")

// state holds the HKDF intermediates (PRK and the T(i-1)/T(i) blocks) so
// they can be zeroized field-by-field instead of relying on garbage
// collection. The HMAC pads and inner/outer hash state live inside the
// crypto/hmac object and are scrubbed by zeroHash after each use.
type state struct {
	prk      [hashLen]byte
	tPrev    [hashLen]byte
	tCurr    [hashLen]byte
	tPrevLen int
}

func (s *state) fastZeroize() {
	zeroize.Bytes(s.prk[:])
	zeroize.Bytes(s.tPrev[:])
	zeroize.Bytes(s.tCurr[:])
	s.tPrevLen = 0
}

func hmacSHA512(key []byte, parts ...[]byte) [hashLen]byte {
	mac := hmac.New(sha512.New, key)
	for _, p := range parts {
		mac.Write(p)
	}
	var out [hashLen]byte
	copy(out[:], mac.Sum(nil))
	zeroHash(mac)
	return out
}

func (s *state) extract(salt, ikm []byte) {
	if len(salt) == 0 {
		var zeroSalt [hashLen]byte
		salt = zeroSalt[:]
	}
	s.prk = hmacSHA512(salt, ikm)
}

func (s *state) expand(info []byte, out []byte) error {
	outLen := len(out)
	if outLen > maxOutputLen {
		return ErrOutputTooLong
	}
	if outLen == 0 {
		return nil
	}

	n := (outLen + hashLen - 1) / hashLen
	offset := 0
	s.tPrevLen = 0

	for i := 1; i <= n; i++ {
		s.tCurr = hmacSHA512(s.prk[:], s.tPrev[:s.tPrevLen], info, []byte{byte(i)})

		copyLen := hashLen
		if outLen-offset < copyLen {
			copyLen = outLen - offset
		}
		copy(out[offset:offset+copyLen], s.tCurr[:copyLen])
		offset += copyLen

		s.tPrev = s.tCurr
		s.tPrevLen = hashLen
		zeroize.Bytes(s.tCurr[:])
	}

	zeroize.Bytes(s.tPrev[:])
	return nil
}

// Derive writes len(out) bytes of HKDF-SHA512 output derived from ikm, salt,
// and info into out. An empty salt is treated as hashLen zero bytes, per
// RFC 5869. Deterministic for fixed inputs; zero-length out is a no-op
// success.
func Derive(ikm, salt, info, out []byte) error {
	var s state
	defer s.fastZeroize()

	s.extract(salt, ikm)
	err := s.expand(info, out)
	return err
}
