package jobstore

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// MaxKeyLen is the maximum length, in bytes, of a well-formed key.
const MaxKeyLen = 512

// Key is an opaque, globally unique identifier that addresses a record
// in the job store. Both jobs and the artifacts they produce are addressed
// by keys.
type Key string

// NewKey allocates a fresh random key.
func NewKey() Key {
	return Key(uuid.New().String())
}

// ParseKey validates s and returns it as a Key. A well-formed key is
// non-empty, at most MaxKeyLen bytes of valid UTF-8 and contains neither
// whitespace nor control characters.
func ParseKey(s string) (Key, error) {
	switch {
	case s == "":
		return "", xerrors.Errorf("parse key: %w: empty key", ErrInvalidKey)
	case len(s) > MaxKeyLen:
		return "", xerrors.Errorf("parse key: %w: longer than %d bytes", ErrInvalidKey, MaxKeyLen)
	case !utf8.ValidString(s):
		return "", xerrors.Errorf("parse key: %w: not valid UTF-8", ErrInvalidKey)
	}

	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", xerrors.Errorf("parse key: %w: illegal character %q", ErrInvalidKey, r)
		}
	}
	return Key(s), nil
}

// String implements fmt.Stringer.
func (k Key) String() string { return string(k) }
