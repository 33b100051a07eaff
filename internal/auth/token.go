package auth

import "github.com/jaevor/go-nanoid"

// NewSessionToken returns an opaque token carried in the session cookie.
// The token itself grants nothing; it only keys a row in the sessions table.
func NewSessionToken() (string, error) {
	generateID, err := nanoid.Standard(40)
	if err != nil {
		return "", err
	}
	return generateID(), nil
}
