// Package pad owns one-time-pad key material: generation, the
// consumption offset, reservation of never-reused byte ranges, and
// durable storage of both.
//
// Bytes below the offset are burned: they are never handed out for
// encryption again, but they remain present so that previously produced
// ciphertexts can still be decrypted via Range.
package pad

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// FingerprintLen is the length in hex characters of a pad fingerprint.
const FingerprintLen = 16

// Pad is a finite sequence of secret random bytes plus the count of
// bytes already consumed from its front. The offset is monotonically
// non-decreasing over the pad's lifetime; only a Store advances it.
type Pad struct {
	handle string
	data   []byte
	offset int
}

// Reservation is a transient claim on the contiguous unused range
// [Offset, Offset+len(Bytes)). It holds a copy of the pad bytes and is
// only made durable by a subsequent Store.Commit of the same length.
type Reservation struct {
	Offset int
	Bytes  []byte
}

// Generate creates a fresh pad of the given length from crypto/rand.
func Generate(length int) (*Pad, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, data); err != nil {
		return nil, fmt.Errorf("pad: read random source: %w", err)
	}
	return &Pad{data: data}, nil
}

// FromParts rehydrates a pad from stored state, validating the
// offset/length relationship.
func FromParts(data []byte, offset int) (*Pad, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty pad data", ErrCorruptPad)
	}
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("%w: offset %d outside [0, %d]", ErrCorruptPad, offset, len(data))
	}
	return &Pad{data: data, offset: offset}, nil
}

// Handle returns the store handle this pad was loaded under.
// Empty for pads not yet attached to a store.
func (p *Pad) Handle() string { return p.handle }

// TotalLength returns the full pad length in bytes.
func (p *Pad) TotalLength() int { return len(p.data) }

// Offset returns the number of bytes already consumed.
func (p *Pad) Offset() int { return p.offset }

// Remaining returns the number of unused bytes left.
func (p *Pad) Remaining() int { return len(p.data) - p.offset }

// Reserve claims the next n unused bytes without advancing the offset.
// The advance becomes durable only via Store.Commit, after the caller's
// cipher step has succeeded. Two sequential reservations that are each
// committed never overlap.
func (p *Pad) Reserve(n int) (Reservation, error) {
	if n <= 0 {
		return Reservation{}, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}
	if n > p.Remaining() {
		return Reservation{}, fmt.Errorf("%w: need %d, have %d", ErrPadExhausted, n, p.Remaining())
	}
	b := make([]byte, n)
	copy(b, p.data[p.offset:p.offset+n])
	return Reservation{Offset: p.offset, Bytes: b}, nil
}

// Range returns a copy of n pad bytes starting at offset, regardless of
// the consumption offset. Used to look up burned bytes when decrypting
// a ciphertext that records which range produced it.
func (p *Pad) Range(offset, n int) ([]byte, error) {
	if n <= 0 || offset < 0 || offset+n > len(p.data) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrInvalidRange, offset, offset+n, len(p.data))
	}
	b := make([]byte, n)
	copy(b, p.data[offset:offset+n])
	return b, nil
}

// Fingerprint returns a short hex digest identifying the pad's byte
// content. Two parties holding the same pad compute the same
// fingerprint; it reveals nothing useful about individual pad bytes.
func (p *Pad) Fingerprint() string {
	sum := blake2b.Sum256(p.data)
	return hex.EncodeToString(sum[:FingerprintLen/2])
}

// advance moves the consumption offset forward. Callers are the Store
// implementations, inside Commit.
func (p *Pad) advance(n int) { p.offset += n }

// rewind undoes an advance after a failed persist.
func (p *Pad) rewind(n int) { p.offset -= n }
