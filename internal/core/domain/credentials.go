package domain

import (
	"fmt"
	"strings"
)

// AuthMethod defines how requests to the repository API authenticate.
type AuthMethod string

const (
	// AuthMethodNone sends anonymous requests.
	AuthMethodNone AuthMethod = "none"
	// AuthMethodToken sends a bearer/personal access token.
	AuthMethodToken AuthMethod = "token"
	// AuthMethodBasic sends a username and password pair.
	AuthMethodBasic AuthMethod = "basic"
)

// Credentials holds the secret material used to build an authenticated transport.
// Only the auth adapter reads it; the engine sees the resulting transport.
type Credentials struct {
	Method   AuthMethod
	Token    string
	Username string
	Password string
}

// TokenCredentials returns token credentials, or none if the token is empty.
func TokenCredentials(token string) Credentials {
	if strings.TrimSpace(token) == "" {
		return Credentials{Method: AuthMethodNone}
	}
	return Credentials{Method: AuthMethodToken, Token: token}
}

// BasicCredentials returns a username/password pair.
func BasicCredentials(username, password string) Credentials {
	return Credentials{Method: AuthMethodBasic, Username: username, Password: password}
}

// Validate checks the fields required by the method are present.
func (c Credentials) Validate() error {
	switch c.Method {
	case AuthMethodNone, "":
		return nil
	case AuthMethodToken:
		if c.Token == "" {
			return fmt.Errorf("%w: token credentials without token", ErrInvalidInput)
		}
		return nil
	case AuthMethodBasic:
		if c.Username == "" || c.Password == "" {
			return fmt.Errorf("%w: basic credentials need username and password", ErrInvalidInput)
		}
		return nil
	}
	return fmt.Errorf("%w: auth method %q", ErrInvalidInput, c.Method)
}

// String never prints secrets.
func (c Credentials) String() string {
	switch c.Method {
	case AuthMethodToken:
		return "token(****)"
	case AuthMethodBasic:
		return "basic(" + c.Username + ":****)"
	}
	return "none"
}
