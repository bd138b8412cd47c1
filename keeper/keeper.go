// Package keeper is the shared business logic layer. CLI commands and
// any other adapters call Keeper methods to run complete one-time-pad
// operations: lock, load, reserve, combine, commit, summarize.
package keeper

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/otpvault/libotp-go/config"
	"github.com/otpvault/libotp-go/otp"
	"github.com/otpvault/libotp-go/pad"
	"github.com/otpvault/libotp-go/report"
)

// Keeper binds a pad store, a capacity reporter, and a logger.
type Keeper struct {
	store            pad.Store
	reporter         report.Reporter
	log              *zap.Logger
	defaultPadLength int
}

// Result holds the output of an encrypt operation: the transport token
// and the post-commit capacity summary. The summary is diagnostic
// output and must never be mixed into the token.
type Result struct {
	Token   string
	Summary report.Summary
}

// New creates a Keeper from a validated configuration. The backend
// selects between the file store and the bbolt store.
func New(cfg config.Config, logger *zap.Logger) (*Keeper, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		store pad.Store
		err   error
	)
	switch cfg.Backend {
	case "bolt":
		store, err = pad.OpenBoltStore(filepath.Join(cfg.DataDir, "pads.db"))
	default:
		store, err = pad.NewFileStore(filepath.Join(cfg.DataDir, "pads"))
	}
	if err != nil {
		return nil, fmt.Errorf("keeper: init pad store: %w", err)
	}

	return &Keeper{
		store:            store,
		reporter:         report.Reporter{AssumedMessageLength: cfg.AssumedMessageLength},
		log:              logger,
		defaultPadLength: cfg.PadLength,
	}, nil
}

// NewWithStore creates a Keeper over an existing store. Used by tests
// and embedders that manage the store lifecycle themselves.
func NewWithStore(store pad.Store, reporter report.Reporter, logger *zap.Logger) *Keeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keeper{
		store:            store,
		reporter:         reporter,
		log:              logger,
		defaultPadLength: config.DefaultPadLength,
	}
}

// Close releases the underlying store.
func (k *Keeper) Close() error { return k.store.Close() }

// withPadLock executes fn while holding the store's exclusive
// cross-process lock for handle. The lock is released on every exit
// path; no reservation is valid unless granted under it.
func (k *Keeper) withPadLock(handle string, fn func() error) error {
	release, err := k.store.Lock(handle)
	if err != nil {
		return fmt.Errorf("keeper: pad lock: %w", err)
	}
	defer release()
	return fn()
}

// EncryptMessage consumes len(plaintext) pad bytes and returns the
// transport token plus a post-commit capacity summary. If no pad exists
// for handle yet, one of requestedLength bytes is created first
// (requestedLength 0 means the configured default).
//
// The offset advance is committed only after the cipher step succeeds;
// on any failure no pad bytes are consumed.
func (k *Keeper) EncryptMessage(handle, plaintext string, requestedLength int) (*Result, error) {
	if requestedLength == 0 {
		requestedLength = k.defaultPadLength
	}

	var res *Result
	err := k.withPadLock(handle, func() error {
		p, err := k.store.LoadOrCreate(handle, requestedLength)
		if err != nil {
			return err
		}

		msg := []byte(plaintext)
		resv, err := p.Reserve(len(msg))
		if err != nil {
			return err
		}

		body, err := otp.Encrypt(msg, resv.Bytes)
		if err != nil {
			return err
		}
		token, err := otp.Seal(p.Fingerprint(), resv.Offset, body)
		if err != nil {
			return err
		}

		if err := k.store.Commit(p, len(msg)); err != nil {
			return err
		}

		summary := k.reporter.Summarize(p)
		k.log.Debug("encrypted message",
			zap.String("handle", handle),
			zap.Int("bytes", len(msg)),
			zap.Int("offset", p.Offset()),
			zap.Int("remaining", summary.RemainingBytes),
		)
		if summary.Low() {
			k.log.Warn("pad close to exhaustion",
				zap.String("handle", handle),
				zap.Int("remaining", summary.RemainingBytes),
				zap.Float64("messages_left", summary.AverageMessageCapacity),
			)
		}

		res = &Result{Token: token, Summary: summary}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DecryptMessage recovers the plaintext for a transport token. The
// envelope names the exact pad range that produced the ciphertext, so
// decryption reads that range directly (burned bytes included) and
// never consults or advances the live offset.
//
// The scheme authenticates nothing: a corrupted token that still parses
// decrypts to garbage without error.
func (k *Keeper) DecryptMessage(handle, token string) (string, error) {
	env, err := otp.Open(token)
	if err != nil {
		return "", err
	}

	var plaintext string
	err = k.withPadLock(handle, func() error {
		p, err := k.store.Load(handle)
		if err != nil {
			return err
		}
		if err := env.CheckPad(p.Fingerprint()); err != nil {
			return err
		}

		padBytes, err := p.Range(env.Offset, env.Length)
		if err != nil {
			return err
		}
		msg, err := otp.Decrypt(env.Body, padBytes)
		if err != nil {
			return err
		}

		k.log.Debug("decrypted message",
			zap.String("handle", handle),
			zap.Int("bytes", env.Length),
			zap.Int("range_offset", env.Offset),
		)
		plaintext = string(msg)
		return nil
	})
	if err != nil {
		return "", err
	}
	return plaintext, nil
}

// CreatePad provisions a fresh pad of the given length and returns its
// initial capacity summary. Fails if a pad already exists for handle.
func (k *Keeper) CreatePad(handle string, length int) (report.Summary, error) {
	if length == 0 {
		length = k.defaultPadLength
	}

	var summary report.Summary
	err := k.withPadLock(handle, func() error {
		p, err := k.store.Create(handle, length)
		if err != nil {
			return err
		}
		summary = k.reporter.Summarize(p)
		k.log.Info("created new pad",
			zap.String("handle", handle),
			zap.String("fingerprint", p.Fingerprint()),
			zap.Int("length", p.TotalLength()),
		)
		return nil
	})
	if err != nil {
		return report.Summary{}, err
	}
	return summary, nil
}

// Status returns the current capacity summary for a pad.
func (k *Keeper) Status(handle string) (report.Summary, error) {
	p, err := k.store.Load(handle)
	if err != nil {
		return report.Summary{}, err
	}
	return k.reporter.Summarize(p), nil
}

// Fingerprint returns the pad's identity fingerprint.
func (k *Keeper) Fingerprint(handle string) (string, error) {
	p, err := k.store.Load(handle)
	if err != nil {
		return "", err
	}
	return p.Fingerprint(), nil
}

// Handles lists all pads in the store.
func (k *Keeper) Handles() ([]string, error) {
	return k.store.Handles()
}
