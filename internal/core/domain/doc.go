// Package domain defines the core entities for hedwig.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - KeywordTable: ordered keyword groups and their running counters
//   - CommitRecord: one commit as seen in the upstream feed
//   - Page: a decoded page of commits plus continuation metadata
//   - AggregateResult: what a monitoring run produced
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
