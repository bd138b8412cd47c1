package otp

import "errors"

var (
	// ErrLengthMismatch indicates the message and the pad byte range are
	// not the same length. This is a caller bug, not a recoverable state.
	ErrLengthMismatch = errors.New("otp: message and pad range lengths differ")

	// ErrMalformedCiphertext indicates a transport token that is not
	// valid base64, not a valid envelope, or internally inconsistent.
	ErrMalformedCiphertext = errors.New("otp: malformed ciphertext")

	// ErrPadMismatch indicates the envelope was produced under a
	// different pad than the one supplied for decryption.
	ErrPadMismatch = errors.New("otp: ciphertext was not produced by this pad")
)
