// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The surveillance engine lives here: Matcher applies the keyword boundary
// heuristic, Cursor walks the feed's pages and Engine drives the
// fetch/match/aggregate loop. MonitorService wires an engine to a backend
// fetcher for one run.
package services
