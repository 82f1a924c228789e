// Command edgram compiles experimental-design documents into edviz grammar
// strings and renders markdown experiment cards.
//
// Usage:
//
//	edgram grammar <design.json>        compile from a file
//	edgram grammar -                    compile from stdin
//	edgram grammar '{"factors": ...}'   compile an inline JSON document
//	edgram card <input.json> <out.md>   generate an experiment card
//	edgram version                      print version information
//
// The grammar string goes to stdout; diagnostics go to stderr and any
// failure exits with a non-zero status.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vals/edgram/card"
	"github.com/vals/edgram/design"
	"github.com/vals/edgram/grammar"
)

const version = "0.1.0"

var cli struct {
	Debug bool `help:"Enable debug logging."`

	Grammar GrammarCmd `cmd:"" help:"Compile a design document into its grammar string"`
	Card    CardCmd    `cmd:"" help:"Generate a markdown experiment card"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// GrammarCmd compiles a design document into one grammar line on stdout.
type GrammarCmd struct {
	Input             string  `arg:"" optional:"" help:"Design document: file path, '-' for stdin, or an inline JSON object."`
	Approximate       bool    `help:"Use ~k/~m notation for large classification counts."`
	StrictClassifiers bool    `help:"Fail on classifier references to undeclared factors."`
	Tolerance         float64 `default:"0.1" help:"Relative balance tolerance."`
}

// Run implements the grammar subcommand.
func (c *GrammarCmd) Run() error {
	doc, err := loadDocument(c.Input)
	if err != nil {
		return err
	}
	if err = doc.Validate(); err != nil {
		return err
	}
	slog.Debug("document parsed",
		"factors", len(doc.Factors),
		"relationships", len(doc.Relationships))

	opts := []grammar.Option{grammar.WithBalanceTolerance(c.Tolerance)}
	if c.Approximate {
		opts = append(opts, grammar.WithApproximateCounts())
	}
	if c.StrictClassifiers {
		opts = append(opts, grammar.WithStrictClassifiers())
	}

	s, err := grammar.Convert(doc, opts...)
	if err != nil {
		return err
	}
	fmt.Println(s)

	return nil
}

// CardCmd generates a markdown experiment card from a card input document.
type CardCmd struct {
	Input  string `arg:"" help:"Card input: file path or '-' for stdin."`
	Output string `arg:"" help:"Output markdown path."`
}

// Run implements the card subcommand.
func (c *CardCmd) Run() error {
	data, err := readInput(c.Input)
	if err != nil {
		return err
	}
	in, err := card.ParseInput(data)
	if err != nil {
		return err
	}
	in.ToolVersion = orDefault(in.ToolVersion, version)

	// An input without a precompiled grammar gets one on the fly.
	if in.Grammar == "" {
		if err = in.Design.Validate(); err != nil {
			return err
		}
		if in.Grammar, err = grammar.Convert(in.Design); err != nil {
			return err
		}
		slog.Debug("grammar compiled", "grammar", in.Grammar)
	}

	content, err := card.Generate(in)
	if err != nil {
		return err
	}
	if err = os.WriteFile(c.Output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	fmt.Printf("Experiment card written to: %s\n", c.Output)

	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run implements the version subcommand.
func (VersionCmd) Run() error {
	fmt.Printf("edgram %s\n", version)

	return nil
}

// orDefault substitutes fallback for an empty value.
func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("edgram"),
		kong.Description("Experimental design grammar compiler and experiment card generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx.FatalIfErrorf(ctx.Run())
}

// loadDocument parses a design document from any of the three input modes.
func loadDocument(input string) (*design.Document, error) {
	data, err := readInput(input)
	if err != nil {
		return nil, err
	}

	return design.ParseBytes(data)
}
