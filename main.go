package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/hangxie/parquet-preview/cmd/preview"
)

var (
	// semantic version
	version string
	// build time in ISO-8601 format
	build string
)

type cli struct {
	Preview          preview.Cmd                  `cmd:"" default:"withargs" help:"Prints size, shape, column statistics, and sample rows of a Parquet file, use \"preview <uri>\" if the file is named after a command."`
	ShellCompletions kongplete.InstallCompletions `cmd:"" help:"Install/uninstall shell completions"`
	Version          kong.VersionFlag             `short:"v" help:"Show build version."`
}

// exitCode maps every failure, kong usage errors included, to 1.
func exitCode(code int) int {
	if code != 0 {
		return 1
	}
	return 0
}

// runCommand runs the selected command and reports its error to stderr, a
// failed read is printed as it is, any other failure gets "Error: " prefix.
func runCommand(ctx *kong.Context, stderr io.Writer) int {
	err := ctx.Run()
	if err == nil {
		return 0
	}

	var readErr *preview.ReadError
	if errors.As(err, &readErr) {
		_, _ = fmt.Fprintln(stderr, err)
	} else {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}

func newParser(c *cli, options ...kong.Option) (*kong.Kong, error) {
	versionString := version
	if versionString == "" {
		versionString = "source"
	}
	if build != "" {
		versionString += " (" + build + ")"
	}

	options = append([]kong.Option{
		kong.Name("parquet-preview"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Description("Preview a Parquet file: size, shape, column types, null statistics, and sample rows."),
		kong.Vars{"version": versionString},
	}, options...)
	return kong.New(c, options...)
}

func main() {
	parser, err := newParser(&cli{}, kong.Exit(func(code int) { os.Exit(exitCode(code)) }))
	if err != nil {
		panic(err)
	}
	kongplete.Complete(parser, kongplete.WithPredictor("file", complete.PredictFiles("*")))

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	os.Exit(runCommand(ctx, os.Stderr))
}
