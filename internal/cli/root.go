package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errReported marks failures whose details were already written to the
// command's error stream.
var errReported = errors.New("command failed")

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "restful",
		Short:   "Call named REST endpoints declared in a collection file",
		Version: version,
		Long: `restful loads a collection of models and endpoints, resolves them against
a shared client configuration and calls them by name. Responses are
normalized into data plus a status descriptor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "f", "restful.yaml", "Collection file (YAML or JSON)")
	flags.StringP("env", "e", "", "Environment from the collection file")
	flags.StringP("output", "o", "text", "Output format (text, json, yaml)")
	flags.BoolP("verbose", "v", false, "Show headers, timing and request details")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newBenchCmd())

	return cmd
}

// Execute runs the root command. Errors not already reported by a command
// are printed to stderr.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
