/*
Package bootstrap implements the launchpad bootstrap sequence.

A Bootstrapper makes sure a Python virtual environment exists in the project
directory, activates it into an explicit execution context, installs the
dependencies listed in the manifest and runs the main program, in that order.
The first failure aborts the run with a domain.StepError; nothing is retried.

# Usage

	b := bootstrap.New(
		bootstrap.WithDir("."),
		bootstrap.WithRunner(process.NewRunner()),
	)

	report, err := b.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("program exited with", report.ProgramExitCode)
*/
package bootstrap
