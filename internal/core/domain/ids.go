package domain

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// EncodeID produces the base64 form used in URL query parameters.
func EncodeID(id ID) string {
	return base64.StdEncoding.EncodeToString([]byte(id))
}

// DecodeID reverses EncodeID. An empty or malformed value yields
// ErrInvalidID.
func DecodeID(encoded string) (ID, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", ErrInvalidID
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// links copied from some clients lose the padding
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return "", ErrInvalidID
		}
	}
	id := strings.TrimSpace(string(raw))
	if id == "" || !utf8.ValidString(id) {
		return "", ErrInvalidID
	}
	return ID(id), nil
}
