// Package config loads the launcher configuration.
//
// Values are layered: built-in defaults, then launchpad.yaml in the project
// directory (or the file given with --config), then LAUNCHPAD_* environment
// variables, then command-line flags.
package config
