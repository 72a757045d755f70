package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"github.com/hangxie/parquet-preview/cmd/preview"
	"github.com/hangxie/parquet-preview/internal/testutils"
)

type row struct {
	ID int64 `parquet:"name=id, type=INT64"`
}

func testParser(t *testing.T) (*cli, *kong.Kong) {
	t.Helper()
	c := &cli{}
	parser, err := newParser(c, kong.Exit(func(int) {}))
	require.NoError(t, err)
	return c, parser
}

func TestParseArgs(t *testing.T) {
	testCases := map[string]struct {
		args   []string
		errMsg string
	}{
		"no-argument":    {[]string{}, "expected"},
		"two-arguments":  {[]string{"a.parquet", "b.parquet"}, "unexpected argument"},
		"unknown-flag":   {[]string{"--foo", "a.parquet"}, "unknown flag"},
		"invalid-rows":   {[]string{"--rows", "abc", "a.parquet"}, "--rows"},
		"one-argument":   {[]string{"a.parquet"}, ""},
		"with-flags":     {[]string{"-n", "3", "--max-columns", "2", "a.parquet"}, ""},
		"explicit-cmd":   {[]string{"preview", "a.parquet"}, ""},
		"remote-options": {[]string{"--anonymous", "--object-version", "v1", "s3://bucket/a.parquet"}, ""},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, parser := testParser(t)
			_, err := parser.Parse(tc.args)
			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	c, parser := testParser(t)
	ctx, err := parser.Parse([]string{"a.parquet"})
	require.NoError(t, err)
	require.Equal(t, "preview <uri>", ctx.Command())
	require.Equal(t, preview.Cmd{
		Rows:         10,
		MaxColumns:   8,
		CellWidth:    50,
		ReadPageSize: 1000,
		URI:          "a.parquet",
		ReadOption:   c.Preview.ReadOption,
	}, c.Preview)
	require.False(t, c.Preview.Anonymous)
	require.Empty(t, c.Preview.ObjectVersion)
}

func TestRunCommand(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "does-not-exist.parquet")
	garbage := testutils.WriteFile(t, "bad.parquet", []byte("this is not a parquet file"))
	good := testutils.WriteParquet(t, "good.parquet", []row{{ID: 1}, {ID: 2}})

	testCases := map[string]struct {
		args   []string
		code   int
		stderr string
	}{
		"not-found":   {[]string{missing}, 1, "Error: File not found: " + missing + "\n"},
		"not-a-file":  {[]string{tempDir}, 1, "Error: Not a file: " + tempDir + "\n"},
		"not-parquet": {[]string{garbage}, 1, "Error reading parquet file: "},
		"bad-option":  {[]string{"--rows=-1", good}, 1, "Error: invalid rows -1"},
		"good":        {[]string{good}, 0, ""},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, parser := testParser(t)
			ctx, err := parser.Parse(tc.args)
			require.NoError(t, err)

			stderr := new(bytes.Buffer)
			var code int
			stdout, _ := testutils.CaptureStdoutStderr(func() {
				code = runCommand(ctx, stderr)
			})
			require.Equal(t, tc.code, code)
			if tc.code == 0 {
				require.Equal(t, "", stderr.String())
				require.Contains(t, stdout, "Shape: 2 rows × 1 columns")
				return
			}
			require.True(t, strings.HasPrefix(stderr.String(), tc.stderr), stderr.String())
			require.NotContains(t, stderr.String(), "parquet-preview: error:")
			require.Equal(t, "", stdout)
		})
	}
}

func TestParseFileNamedAfterCommand(t *testing.T) {
	c, parser := testParser(t)
	ctx, err := parser.Parse([]string{"preview", "shell-completions"})
	require.NoError(t, err)
	require.Equal(t, "preview <uri>", ctx.Command())
	require.Equal(t, "shell-completions", c.Preview.URI)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(0))
	require.Equal(t, 1, exitCode(1))
	require.Equal(t, 1, exitCode(80))
	require.Equal(t, 1, exitCode(-1))
}
