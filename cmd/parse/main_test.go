package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func runParseCmd(t *testing.T, file string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{
		Use:          "parse <file>",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runParse,
	}
	cmd.SetArgs([]string{file})

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

func writeLine(t *testing.T, line string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.txt")
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o644))
	return path
}

func TestParseCommandPrintsAST(t *testing.T) {
	path := writeLine(t, "Fn Id(main) OpenParen CloseParen Arrow Int OpenBrace Return Num(0) Semicolon CloseBrace")
	out, err := runParseCmd(t, path)
	require.NoError(t, err)
	require.Equal(t, `Program { structs: {}, externs: {}, functions: {Function { name: "main", prms: [], rettyp: Int, locals: {}, stmts: [Return(Num(0))] }}}`+"\n", out)
}

func TestParseCommandReportsParseErrorAndExitsZero(t *testing.T) {
	path := writeLine(t, "Fn")
	out, err := runParseCmd(t, path)
	require.NoError(t, err) // RunE returns nil: the process itself succeeds
	require.Equal(t, "parse error: unexpected end of token stream\n", out)
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := runParseCmd(t, filepath.Join(t.TempDir(), "does-not-exist.txt"))
	require.Error(t, err)
}
