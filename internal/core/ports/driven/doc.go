// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - CommitFetcher: fetches one page of a repository's commit feed
//   - FetcherFactory: selects the fetcher for a project's backend
//   - ConfigStore: application configuration (credentials, defaults)
//   - CredentialResolver: picks the credentials a run authenticates with
//   - ReportStore: reports of recent runs within one process
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
