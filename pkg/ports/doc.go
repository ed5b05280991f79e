/*
Package ports defines the driven ports (interfaces) of the launchpad bootstrapper.

These interfaces decouple the bootstrap sequence from the operating system, so the
same sequence can spawn real processes or run against a scripted fake in tests.

# Key Interfaces

  - CommandRunner: Runs a subprocess to completion and reports its exit status.
  - Pauser: Blocks until the user acknowledges (or returns immediately when disabled).
*/
package ports
