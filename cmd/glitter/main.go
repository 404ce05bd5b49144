// Command glitter is the command-line driver for the Glitter interpreter:
// it reads a script file or runs an interactive REPL, neither of which is
// part of the core pipeline — this binary is the external collaborator
// the core's abstract I/O streams and error sink exist to serve.
package main

import (
	"os"

	"github.com/glitterlang/glitter/cmd/glitter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
