package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// mapStore is a minimal ConfigStore backed by a map.
type mapStore map[string]any

func (m mapStore) Get(key string) (any, bool) { v, ok := m[key]; return v, ok }
func (m mapStore) GetString(key string) string {
	s, _ := m[key].(string)
	return s
}
func (m mapStore) GetInt(string) int               { return 0 }
func (m mapStore) GetBool(string) bool             { return false }
func (m mapStore) GetStringSlice(string) []string  { return nil }
func (m mapStore) Set(key string, value any) error { m[key] = value; return nil }
func (m mapStore) Save() error                     { return nil }
func (m mapStore) Load() error                     { return nil }
func (m mapStore) Path() string                    { return "" }

func newTestResolver(store mapStore, env map[string]string) *Resolver {
	r := NewResolver(store)
	r.getenv = func(k string) string { return env[k] }
	return r
}

func TestResolver_Resolve(t *testing.T) {
	store := mapStore{
		"github.token":    "from-store",
		"gitea.username":  "forge",
		"gitea.password":  "pw",
		"github.username": "ignored",
	}

	tests := []struct {
		name     string
		store    mapStore
		env      map[string]string
		backend  domain.Backend
		explicit domain.Credentials
		want     domain.Credentials
	}{
		{
			name:     "explicit wins",
			store:    store,
			env:      map[string]string{EnvToken: "from-env"},
			backend:  domain.BackendGitHub,
			explicit: domain.TokenCredentials("from-flag"),
			want:     domain.TokenCredentials("from-flag"),
		},
		{
			name:    "environment token",
			store:   store,
			env:     map[string]string{EnvToken: "from-env"},
			backend: domain.BackendGitHub,
			want:    domain.TokenCredentials("from-env"),
		},
		{
			name:    "environment basic",
			env:     map[string]string{EnvUsername: "u", EnvPassword: "p"},
			backend: domain.BackendGitHub,
			want:    domain.BasicCredentials("u", "p"),
		},
		{
			name:    "username without password is ignored",
			env:     map[string]string{EnvUsername: "u"},
			backend: domain.BackendGitHub,
			want:    domain.Credentials{Method: domain.AuthMethodNone},
		},
		{
			name:    "store token per backend",
			store:   store,
			backend: domain.BackendGitHub,
			want:    domain.TokenCredentials("from-store"),
		},
		{
			name:    "store basic per backend",
			store:   store,
			backend: domain.BackendGitea,
			want:    domain.BasicCredentials("forge", "pw"),
		},
		{
			name:    "nothing configured",
			backend: domain.BackendGitea,
			want:    domain.Credentials{Method: domain.AuthMethodNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(tt.store, tt.env)
			if tt.store == nil {
				r.store = nil
			}
			assert.Equal(t, tt.want, r.Resolve(tt.backend, tt.explicit))
		})
	}
}
