package otp

import (
	"encoding/json"
	"fmt"
)

// Envelope is the transportable ciphertext record. It pins the exact
// pad range that produced the body, so decryption never depends on the
// pad's live consumption offset: messages decrypt correctly no matter
// how many encrypts happened in between.
type Envelope struct {
	// PadID is the fingerprint of the pad the body was encrypted under.
	PadID string `json:"pad"`

	// Offset is the pad offset the consumed range started at.
	Offset int `json:"offset"`

	// Length is the consumed range length in bytes.
	Length int `json:"length"`

	// Body is the XORed bytes (base64 in the JSON form).
	Body []byte `json:"body"`
}

// Seal builds an envelope and encodes it as a single opaque
// base64(JSON) token suitable for console and copy-paste transport.
func Seal(padID string, offset int, body []byte) (string, error) {
	env := Envelope{
		PadID:  padID,
		Offset: offset,
		Length: len(body),
		Body:   body,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("otp: marshal envelope: %w", err)
	}
	return EncodeForTransport(raw), nil
}

// Open decodes and validates a transport token.
func Open(token string) (*Envelope, error) {
	raw, err := DecodeFromTransport(token)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if env.PadID == "" {
		return nil, fmt.Errorf("%w: missing pad fingerprint", ErrMalformedCiphertext)
	}
	if env.Offset < 0 || env.Length <= 0 {
		return nil, fmt.Errorf("%w: range [%d, %d)", ErrMalformedCiphertext, env.Offset, env.Offset+env.Length)
	}
	if env.Length != len(env.Body) {
		return nil, fmt.Errorf("%w: length %d but %d body bytes", ErrMalformedCiphertext, env.Length, len(env.Body))
	}
	return &env, nil
}

// CheckPad verifies the envelope was produced under the pad with the
// given fingerprint.
func (e *Envelope) CheckPad(padID string) error {
	if e.PadID != padID {
		return fmt.Errorf("%w: envelope pad %s, supplied pad %s", ErrPadMismatch, e.PadID, padID)
	}
	return nil
}
