// Package identifier validates and normalizes the container names used to
// address a blockkv workspace: paths of [a-z0-9_] segments separated by '/'.
package identifier

import (
	"strings"

	"github.com/blockkv/blockkv/berr"
)

// DefaultSeparator is the separator used by Normalize when the caller does
// not request remapping to a platform-specific one.
const DefaultSeparator = '/'

// IsAllowed reports whether c is a legal identifier character: an ASCII
// letter, digit, underscore, or the path separator '/'.
func IsAllowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '/':
		return true
	default:
		return false
	}
}

// Normalize lowercases ASCII letters, rejects any disallowed character or
// consecutive "//", and remaps '/' to sep. Passing sep == '/' leaves the
// separator unchanged. An empty id is rejected.
func Normalize(id string, sep byte) (string, error) {
	if id == "" {
		return "", berr.Wrap(berr.ErrInvalidArgument, "identifier: empty")
	}
	out := make([]byte, len(id))
	prevSlash := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !IsAllowed(c) {
			return "", berr.Wrap(berr.ErrInvalidArgument, "identifier: disallowed character %q at %d", c, i)
		}
		if c == '/' {
			if prevSlash {
				return "", berr.Wrap(berr.ErrInvalidArgument, "identifier: consecutive separators at %d", i)
			}
			prevSlash = true
			out[i] = sep
			continue
		}
		prevSlash = false
		if c >= 'A' && c <= 'Z' {
			c = c - 'A' + 'a'
		}
		out[i] = c
	}
	return string(out), nil
}

// Segments splits a normalized identifier on sep into its path segments.
func Segments(normalized string, sep byte) []string {
	return strings.Split(normalized, string(sep))
}
