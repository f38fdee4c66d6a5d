package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrInvalidSubscriberName reports a name that failed validation. The wrapped
// message is safe to echo back to the submitter.
var ErrInvalidSubscriberName = errors.New("invalid subscriber name")

// maxNameGraphemes bounds the name length in grapheme clusters rather than
// bytes or runes, so a 256-character name in any script is accepted.
const maxNameGraphemes = 256

// forbiddenNameCharacters would let a stored name smuggle markup or path
// fragments into downstream renderers.
const forbiddenNameCharacters = `/()"<>\{}|`

// SubscriberName is a validated display name. The zero value is invalid;
// ParseSubscriberName is the only constructor, so holding a SubscriberName
// is proof the checks passed.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw and wraps it. It fails when the trimmed
// value is empty, the value exceeds 256 grapheme clusters, or it contains a
// forbidden character.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberName{}, fmt.Errorf("%w: name must not be empty", ErrInvalidSubscriberName)
	}
	if uniseg.GraphemeClusterCount(raw) > maxNameGraphemes {
		return SubscriberName{}, fmt.Errorf(
			"%w: name must not exceed %d characters", ErrInvalidSubscriberName, maxNameGraphemes)
	}
	if strings.ContainsAny(raw, forbiddenNameCharacters) {
		return SubscriberName{}, fmt.Errorf(
			"%w: name must not contain any of %s", ErrInvalidSubscriberName, forbiddenNameCharacters)
	}
	return SubscriberName{value: raw}, nil
}

// String returns the underlying validated name.
func (n SubscriberName) String() string { return n.value }
