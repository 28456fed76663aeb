// Package models holds the records shared between repositories and services.
package models

// User is a login account. PasswordDigest is the hex digest produced by the
// password hasher; plaintext passwords are never stored.
type User struct {
	UserName       string
	PasswordDigest string
	Active         bool
}
