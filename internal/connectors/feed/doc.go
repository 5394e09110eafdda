// Package feed holds the pieces shared by every commit-feed connector:
// Link header pagination, page payload classification, API error types,
// optional request throttling and capped retry.
package feed
