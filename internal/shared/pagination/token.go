// Package pagination implements the opaque cursor tokens used by list
// endpoints. A token is the base64 encoding of a small JSON document
// describing where the previous page stopped.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidToken indicates the supplied cursor could not be decoded.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor marks the position after the last item of a page.
type Cursor struct {
	// LastID is the identifier of the last item returned.
	LastID string `json:"lastId"`
	// LastCreatedAt orders user-scoped listings (RFC 3339).
	LastCreatedAt string `json:"lastCreatedAt,omitempty"`
}

// Encode serializes the cursor into an opaque token.
func Encode(c Cursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode parses a token produced by Encode. An empty token yields a nil
// cursor, meaning "start from the beginning".
func Decode(token string) (*Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var cursor Cursor
	if err := json.Unmarshal(payload, &cursor); err != nil {
		return nil, ErrInvalidToken
	}
	if cursor.LastID == "" {
		return nil, ErrInvalidToken
	}
	return &cursor, nil
}
