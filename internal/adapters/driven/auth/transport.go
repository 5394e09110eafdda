// Package auth builds authenticated HTTP transports for commit feed requests
// and resolves which credentials a run uses.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns an http.Client that authenticates every request.
//
// Token credentials use a static oauth2 token source (Authorization: Bearer),
// basic credentials use go-github's BasicAuthTransport, and no credentials
// give a plain client.
func NewHTTPClient(ctx context.Context, creds domain.Credentials) (*http.Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var client *http.Client
	switch creds.Method {
	case domain.AuthMethodToken:
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: creds.Token},
		)
		client = oauth2.NewClient(ctx, ts)
	case domain.AuthMethodBasic:
		tp := &gh.BasicAuthTransport{
			Username: creds.Username,
			Password: creds.Password,
		}
		client = tp.Client()
	case domain.AuthMethodNone, "":
		client = &http.Client{}
	default:
		return nil, fmt.Errorf("%w: auth method %q", domain.ErrInvalidInput, creds.Method)
	}

	client.Timeout = DefaultTimeout
	return client, nil
}
