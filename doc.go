/*
Package launchpad bootstraps a Python project and starts its main program.

A launch runs a fixed sequence of steps against the project directory and stops at the
first one that fails:

  - Check for the virtual environment (./venv by default).
  - Create it with the host interpreter when it is missing.
  - Activate it for every subprocess that follows, without touching the launcher's own environment.
  - Check that the dependency manifest (requirements.txt) exists.
  - Install the dependencies with pip from inside the environment.
  - Run the main program (src/main.py) and record its exit status.

# Layout

The sequence itself lives in pkg/bootstrap and is free of any console concerns. Subprocesses
go through the ports.CommandRunner interface: pkg/adapters/process spawns real processes and
pkg/adapters/memory scripts outcomes for tests. The launcher command (cmd/launchpad) adds
configuration, localized progress output, the closing key-press prompt and exit codes.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/launchpad/pkg/bootstrap"
	)

	func main() {
		b := bootstrap.New(bootstrap.WithDir("./my-project"))

		report, err := b.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("created=%v program exit code=%d", report.Created, report.ProgramExitCode)
	}
*/
package launchpad
