// Package connectors builds the commit fetcher for a project's backend.
//
// Each backend lives in its own subpackage (github, gitea) and shares the
// pagination, payload and throttling helpers of package feed. The set of
// backends is closed; selection is a switch on domain.Backend.
package connectors
