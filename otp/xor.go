// Package otp implements the combining transform and transport encoding
// of a one-time-pad cipher.
//
// XOR with never-reused random bytes is information-theoretically secure
// for confidentiality only. There is no integrity protection: a bit flip
// in transit silently corrupts the recovered plaintext with no error
// signal. That is inherent to the cipher class, and callers must treat
// tokens accordingly.
package otp

import (
	"encoding/base64"
	"fmt"
)

// Encrypt XORs plaintext against an equal-length pad byte range.
// Pure function; the pad bytes must come from a fresh reservation that
// is committed only after this call succeeds.
func Encrypt(plaintext, padBytes []byte) ([]byte, error) {
	return combine(plaintext, padBytes)
}

// Decrypt XORs ciphertext against the same pad byte range that produced
// it. XOR is self-inverse, so this is the same operation as Encrypt.
func Decrypt(ciphertext, padBytes []byte) ([]byte, error) {
	return combine(ciphertext, padBytes)
}

// combine XORs two equal-length byte sequences.
func combine(msg, padBytes []byte) ([]byte, error) {
	if len(msg) != len(padBytes) {
		return nil, fmt.Errorf("%w: message %d, pad range %d", ErrLengthMismatch, len(msg), len(padBytes))
	}
	out := make([]byte, len(msg))
	for i := range msg {
		out[i] = msg[i] ^ padBytes[i]
	}
	return out, nil
}

// EncodeForTransport encodes raw bytes as standard base64 with no line
// wrapping.
func EncodeForTransport(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeFromTransport decodes a standard base64 string.
func DecodeFromTransport(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	return b, nil
}
