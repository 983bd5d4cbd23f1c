package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rotexsoft/gdao"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Input string // "json" | "yaml" | "msgpack", empty to detect
}

var inputExtensions = map[string]string{
	".json":    "json",
	".yaml":    "yaml",
	".yml":     "yaml",
	".msgpack": "msgpack",
	".mp":      "msgpack",
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [file|-]",
		Short: "Compile a filter description into a SQL fragment",
		Long: `Compile reads a filter description as JSON, YAML or MessagePack,
validates it and prints the SQL fragment followed by its bound parameters.

The input format is taken from --input, then from the file extension, and
defaults to JSON. With no file, or "-", the description is read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runCompile(opts, path, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input format (json|yaml|msgpack)")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	format, err := inputFormat(opts.Input, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "compile", err)
	}

	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}

	c, err := newCompiler(opts.RootOptions, commandLogger(opts.RootOptions, cmd.ErrOrStderr()))
	if err != nil {
		return WrapExitError(ExitCommandError, "configure", err)
	}

	var result *gdao.Result
	switch format {
	case "yaml":
		result, err = c.CompileYAML(data)
	case "msgpack":
		result, err = c.CompileMsgpack(data)
	default:
		result, err = c.CompileJSON(data)
	}
	if err != nil {
		var ve *gdao.ValidationError
		if errors.As(err, &ve) {
			if outErr := formatter.Rejection(ve); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitInvalid, "invalid description", err)
		}
		return WrapExitError(ExitCommandError, "compile", err)
	}

	return formatter.Result(result)
}

func inputFormat(flag, path string) (string, error) {
	if flag != "" {
		switch flag {
		case "json", "yaml", "msgpack":
			return flag, nil
		default:
			return "", fmt.Errorf("invalid input format %q: must be json, yaml or msgpack", flag)
		}
	}
	if format, ok := inputExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return format, nil
	}
	return "json", nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// commandLogger returns a debug text logger on stderr with --verbose and a
// discarding logger otherwise.
func commandLogger(opts *RootOptions, stderr io.Writer) *slog.Logger {
	if !opts.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
