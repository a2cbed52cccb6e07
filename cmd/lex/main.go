// Command lex reads a Cflat source file and prints its token sequence in
// the on-the-wire format pkg/token.Print defines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cflat/pkg/lexer"
	"cflat/pkg/token"
)

func main() {
	cmd := &cobra.Command{
		Use:          "lex <file>",
		Short:        "Lex a Cflat source file and print its token sequence",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runLex,
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runLex never fails because of the file's contents: lexical errors surface
// as Error tokens in the printed sequence, not as a nonzero exit. The only
// failure mode here is being unable to read the file at all.
func runLex(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", args[0], err)
	}
	tokens := lexer.Lex(string(data))
	fmt.Print(token.Print(tokens))
	return nil
}
