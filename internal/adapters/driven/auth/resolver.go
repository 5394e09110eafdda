package auth

import (
	"os"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
)

// Environment variables consulted for credentials.
const (
	EnvToken    = "HEDWIG_TOKEN"
	EnvUsername = "HEDWIG_USERNAME"
	EnvPassword = "HEDWIG_PASSWORD"
)

// Ensure Resolver implements the interface.
var _ driven.CredentialResolver = (*Resolver)(nil)

// Resolver picks the credentials for a backend.
//
// Explicit credentials win, then the environment, then the config store keys
// <backend>.token, <backend>.username and <backend>.password.
type Resolver struct {
	store  driven.ConfigStore
	getenv func(string) string
}

// NewResolver creates a resolver. store may be nil.
func NewResolver(store driven.ConfigStore) *Resolver {
	return &Resolver{store: store, getenv: os.Getenv}
}

// Resolve returns the credentials to use for backend.
// A token takes precedence over a username/password pair at each level.
func (r *Resolver) Resolve(backend domain.Backend, explicit domain.Credentials) domain.Credentials {
	if explicit.Method != "" && explicit.Method != domain.AuthMethodNone {
		return explicit
	}

	if creds, ok := fromValues(r.getenv(EnvToken), r.getenv(EnvUsername), r.getenv(EnvPassword)); ok {
		return creds
	}

	if r.store != nil {
		prefix := string(backend) + "."
		if creds, ok := fromValues(
			r.store.GetString(prefix+"token"),
			r.store.GetString(prefix+"username"),
			r.store.GetString(prefix+"password"),
		); ok {
			return creds
		}
	}

	return domain.Credentials{Method: domain.AuthMethodNone}
}

func fromValues(token, username, password string) (domain.Credentials, bool) {
	if token != "" {
		return domain.TokenCredentials(token), true
	}
	if username != "" && password != "" {
		return domain.BasicCredentials(username, password), true
	}
	return domain.Credentials{}, false
}
