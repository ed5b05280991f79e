// Package venv resolves the on-disk layout of a Python virtual environment and
// activates it into an explicit ExecContext.
//
// Activation never touches the current process environment: the activated
// variables live in the returned ExecContext and are passed to each subprocess.
package venv
