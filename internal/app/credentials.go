package app

import (
	"golang.org/x/crypto/bcrypt"
)

// Credentials are the single username/password pair accepted by Login.
//
// Password is compared verbatim. If PasswordHash (bcrypt) is set it is used
// instead and Password is ignored.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Match reports whether username and password are accepted.
// An unconfigured username never matches.
func (c Credentials) Match(username, password string) bool {
	if c.Username == "" || username != c.Username {
		return false
	}

	if c.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	}

	return password == c.Password
}
