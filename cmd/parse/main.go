// Command parse reads a file holding one line in pkg/token.Print's format,
// reconstructs the token stream, parses it, and prints the resulting AST.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cflat/pkg/parser"
	"cflat/pkg/token"
)

func main() {
	cmd := &cobra.Command{
		Use:          "parse <file>",
		Short:        "Parse a lexed Cflat token sequence and print its AST",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runParse,
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runParse treats a parse failure as a successful run of the tool itself:
// the error message is the program's answer, printed to stdout with a
// normal exit. Only a usage or file problem is a failure of the process.
func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", args[0], err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var line string
	if scanner.Scan() {
		line = scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read file %s: %w", args[0], err)
	}

	tokens := token.Reconstruct(line)
	prog, err := parser.Parse(tokens)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	fmt.Println(prog.String())
	return nil
}
