/*
Package domain contains the core types of the launchpad bootstrap sequence.

It defines the ordered steps of a bootstrap run, the flat error taxonomy used to
abort it, and the lifecycle hooks that let hosts observe each step. This package
is kept free of I/O so it can be shared by the bootstrapper, the adapters and
the presentation layer.

# Key Entities

  - Step: One stage of the sequence (check, create, activate, check manifest, install, run).
  - StepError: A fatal failure, classified by Kind and tied to the Step that produced it.
  - Report: The outcome of a run (what was skipped, the program's exit code, timings).
  - LifecycleHooks: Callbacks fired around every step.
*/
package domain
