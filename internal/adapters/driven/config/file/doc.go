// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage (~/.hedwig/config.toml)
//   - LoadProjects: repository definitions in TOML or the legacy JSON shape
//   - LoadKeywords: keyword tables in TOML or ordered JSON, with an embedded default
package file
