// Package config provides user configuration management for the cometblue
// command line tool.
//
// This package manages a YAML-based configuration file that stores the
// devices a user has registered (alias, Bluetooth address, optional PIN)
// and application preferences such as the BLE gateway URL and the default
// output format.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/cometblue/config.yaml or $HOME/.config/cometblue/config.yaml
//   - macOS: $HOME/.config/cometblue/config.yaml
//   - Windows: %LOCALAPPDATA%\cometblue\config.yaml
//
// Because the file may carry device PINs, it is written with user-only
// permissions (0600, directory 0700). Storing a PIN is opt-in; users who
// prefer prompting simply never pass one to `device add`.
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex and saves are
// atomic (write to temp file, then rename).
package config
