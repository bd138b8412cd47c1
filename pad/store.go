package pad

// Store persists pad state and is the sole writer of the consumption
// offset. Implementations must guarantee that Commit either lands the
// full new state durably or leaves the prior state fully intact, and
// that Lock excludes other processes for the whole
// load -> reserve -> commit span.
type Store interface {
	// Load returns the pad stored under handle.
	// Returns ErrPadNotFound if none exists, ErrCorruptPad if the
	// stored representation fails validation.
	Load(handle string) (*Pad, error)

	// Create generates and persists a fresh pad of the given length.
	// Returns ErrPadExists if the handle is already in use.
	Create(handle string, length int) (*Pad, error)

	// LoadOrCreate loads the pad for handle, creating one of the given
	// length if none exists yet. length is only consulted on creation.
	LoadOrCreate(handle string, length int) (*Pad, error)

	// Commit advances the pad's offset by n and persists the full pad
	// state. On persistence failure the in-memory offset is rolled back
	// and the returned error wraps ErrCommitFailed.
	Commit(p *Pad, n int) error

	// Handles lists all stored pad handles.
	Handles() ([]string, error)

	// Lock acquires an exclusive cross-process lock for the handle.
	// The returned release function must be called on every exit path.
	Lock(handle string) (release func(), err error)

	// Close releases any resources held by the store.
	Close() error
}

// validHandleByte reports whether c may appear in a pad handle.
func validHandleByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '_' || c == '-':
		return true
	}
	return false
}

// validateHandle checks that handle is non-empty, contains only
// [A-Za-z0-9._-], and cannot escape the store directory.
func validateHandle(handle string) error {
	if handle == "" || handle == "." || handle == ".." {
		return ErrInvalidHandle
	}
	for i := 0; i < len(handle); i++ {
		if !validHandleByte(handle[i]) {
			return ErrInvalidHandle
		}
	}
	return nil
}
