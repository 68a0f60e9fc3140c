// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.compass/config.toml, with
//     environment overrides and fsnotify-driven reload
package file
