package id

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ShortLen is the number of leading characters shown for an ID in tables.
const ShortLen = 8

// ErrAmbiguous is returned by Resolve when a prefix matches more than one ID.
var ErrAmbiguous = errors.New("ambiguous id prefix")

// New returns a fresh opaque transaction ID.
func New() string {
	return uuid.New().String()
}

// Short returns the display form of an ID.
// "3f0c9a7e-5b1d-4c2e-9a55-0d1c2b3a4f5e" -> "3f0c9a7e"
func Short(id string) string {
	if len(id) <= ShortLen {
		return id
	}
	return id[:ShortLen]
}

// Resolve maps user input to one of ids. An exact match wins; otherwise the
// input must be a unique prefix. No match returns "" and a nil error.
func Resolve(input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d transactions", ErrAmbiguous, input, len(matches))
	}
}
