package driven

import "github.com/custodia-labs/hedwig/internal/core/domain"

// CredentialResolver decides which credentials a run uses for a backend.
type CredentialResolver interface {
	// Resolve returns explicit when it carries credentials, otherwise the
	// first configured source. It returns AuthMethodNone when nothing is set.
	Resolve(backend domain.Backend, explicit domain.Credentials) domain.Credentials
}
