package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	coreerrors "github.com/glitterlang/glitter/internal/errors"
	"github.com/glitterlang/glitter/internal/lexer"
	"github.com/glitterlang/glitter/internal/parser"
	"github.com/glitterlang/glitter/internal/prettyprint"
	"github.com/glitterlang/glitter/pkg/ast"
	"github.com/glitterlang/glitter/pkg/glitter"
	"github.com/glitterlang/glitter/pkg/token"
)

func runFile(path string, stdout, stderr io.Writer, formatter *prettyprint.Formatter) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(content)

	if dumpTokens {
		dumpTokenStream(stdout, source, path)
	}
	if dumpAST {
		dumpProgramAST(stdout, source, path)
	}

	failed := false
	sink := glitter.ErrorSinkFunc(func(errs coreerrors.List) {
		failed = true
		fmt.Fprintln(stderr, formatter.All(errs, source))
	})

	s := glitter.New(os.Stdin, stdout)
	s.Run(source, path, sink)
	if failed {
		return fmt.Errorf("%s: execution failed", path)
	}
	return nil
}

// runREPL reads one line at a time from in, feeding each to a single
// Session so variables and functions declared on one line stay visible on
// the next. A line that is exactly "!quit" ends the loop.
func runREPL(in io.Reader, stdout, stderr io.Writer, formatter *prettyprint.Formatter) error {
	s := glitter.New(in, stdout)
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(stdout, "glitter REPL — type !quit to exit")
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "!quit" {
			break
		}
		if line == "" {
			continue
		}

		sink := glitter.ErrorSinkFunc(func(errs coreerrors.List) {
			fmt.Fprintln(stderr, formatter.All(errs, line))
		})
		s.Run(line, "<repl>", sink)
	}
	return scanner.Err()
}

func dumpTokenStream(w io.Writer, source, path string) {
	fmt.Fprintln(w, "tokens:")
	s := lexer.New(source, path)
	for {
		tok := s.Next()
		fmt.Fprintf(w, "  %s\n", tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	fmt.Fprintln(w)
}

func dumpProgramAST(w io.Writer, source, path string) {
	fmt.Fprintln(w, "ast:")
	scanner := lexer.New(source, path)
	p := parser.New(scanner, path)
	stmts := p.ParseProgram()
	for _, stmt := range stmts {
		dumpNode(w, stmt, 1)
	}
	fmt.Fprintln(w)
}

func dumpNode(w io.Writer, n ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Fprintf(w, "%s%T @ %s\n", indent, n, n.Pos())
}
