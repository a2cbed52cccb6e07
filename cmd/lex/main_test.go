package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func runLexCmd(t *testing.T, file string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{
		Use:          "lex <file>",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runLex,
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{file})

	// runLex writes to os.Stdout directly (matching the teacher driver's own
	// fmt.Print-to-stdout style), so capture that instead of cmd's writer.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	execErr := cmd.Execute()
	w.Close()
	os.Stdout = stdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), execErr
}

func TestLexCommandPrintsTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.cfl")
	require.NoError(t, os.WriteFile(path, []byte("fn main() -> int { return 0; }"), 0o644))

	out, err := runLexCmd(t, path)
	require.NoError(t, err)
	require.Equal(t, "Fn Id(main) OpenParen CloseParen Arrow Int OpenBrace Return Num(0) Semicolon CloseBrace\n", out)
}

func TestLexCommandMissingFile(t *testing.T) {
	_, err := runLexCmd(t, filepath.Join(t.TempDir(), "does-not-exist.cfl"))
	require.Error(t, err)
}
