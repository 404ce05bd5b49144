package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/glitterlang/glitter/internal/prettyprint"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	dumpTokens bool
	dumpAST    bool
)

var rootCmd = &cobra.Command{
	Use:   "glitter [file]",
	Short: "Glitter interpreter",
	Long: `glitter runs programs written in Glitter, a small dynamically typed,
lexically scoped scripting language with closures.

With no arguments it starts an interactive REPL; with one argument it runs
the given file.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		stdout := colorableOutput(os.Stdout)
		formatter := formatterFor(os.Stdout)
		if len(args) == 0 {
			return runREPL(os.Stdin, stdout, os.Stderr, formatter)
		}
		return runFile(args[0], stdout, os.Stderr, formatter)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream before running")
	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed statement list before running")
}

// colorableOutput wraps f so ANSI escapes from fatih/color render correctly
// on Windows consoles; on other platforms it's a no-op passthrough.
func colorableOutput(f *os.File) io.Writer {
	return colorable.NewColorable(f)
}

// formatterFor picks a colored or plain prettyprint.Formatter depending on
// whether f is actually a terminal — piping glitter's output to a file or
// another process should never embed escape codes.
func formatterFor(f *os.File) *prettyprint.Formatter {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return prettyprint.New()
	}
	return prettyprint.Colorless()
}
