package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/launchpad/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "launchpad [dir] [-- program args...]",
	Short: "Launchpad prepares a Python project's virtual environment and runs it",
	Long: `Launchpad checks for the project's virtual environment (creating it when missing),
installs the dependencies from the manifest and starts the main program inside it.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions(cmd, args)

		ctx := cli.NewSignalContext(context.Background())
		code := cli.Launch(ctx, opts)
		ctx.Cancel()
		os.Exit(code)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// overrideFlags maps flag names to configuration keys.
var overrideFlags = map[string]string{
	"venv":                "venv",
	"manifest":            "manifest",
	"entry":               "entry",
	"python":              "python",
	"pause":               "pause",
	"lang":                "lang",
	"debug":               "debug",
	"metrics-file":        "metrics_file",
	"propagate-exit-code": "propagate_exit_code",
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Project directory")
	flags.StringP("config", "c", "", "Configuration file (default <dir>/launchpad.yaml if present)")
	flags.String("venv", "", "Virtual environment directory (default venv)")
	flags.String("manifest", "", "Dependency manifest (default requirements.txt)")
	flags.String("entry", "", "Main program (default src/main.py)")
	flags.String("python", "", "Interpreter used to create the environment (default python3, python on Windows)")
	flags.String("pause", "", "Wait for a key before exiting: auto, always or never (default auto)")
	flags.String("lang", "", "Message language, e.g. ru or en (default from LANG)")
	flags.Bool("debug", false, "Enable debug logging to stderr")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.Bool("propagate-exit-code", false, "Exit with the main program's exit code")
}

// runOptions collects the explicitly set flags. An optional positional argument names
// the project directory; everything after "--" goes to the main program.
func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	positional, programArgs := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional, programArgs = args[:dash], args[dash:]
	}

	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	if !flags.Changed("dir") && len(positional) > 0 {
		dir = positional[0]
	}
	configFile, _ := flags.GetString("config")

	overrides := map[string]any{}
	for flag, key := range overrideFlags {
		f := flags.Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		overrides[key] = f.Value.String()
	}

	return cli.RunOptions{
		Dir:         dir,
		ConfigFile:  configFile,
		Overrides:   overrides,
		ProgramArgs: programArgs,
	}
}
