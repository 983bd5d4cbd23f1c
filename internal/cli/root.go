// Package cli implements the gdao command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string // "text" | "json"
	Dialect    string
	ConfigPath string
	MaxDepth   int
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gdao CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gdao",
		Short: "Compile filter descriptions into SQL WHERE clauses",
		Long: `gdao validates nested filter descriptions and compiles them into
parameterized SQL fragments for WHERE and HAVING clauses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, ok := dialects[opts.Dialect]; !ok {
				return fmt.Errorf("invalid dialect %q: must be one of %v", opts.Dialect, DialectNames())
			}
			if opts.MaxDepth < 0 {
				return fmt.Errorf("invalid max depth %d", opts.MaxDepth)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log rejections and compiled clauses to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Dialect, "dialect", "d", "named", "placeholder dialect")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML file with description keys and limits")
	cmd.PersistentFlags().IntVar(&opts.MaxDepth, "max-depth", 0, "override the configured nesting limit")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewOperatorsCommand(opts))

	return cmd
}
