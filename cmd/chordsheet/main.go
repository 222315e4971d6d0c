// Command chordsheet parses, transposes, formats and serializes chord sheets.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ChordSheet/core/song"
	"github.com/FocuswithJustin/ChordSheet/internal/logging"
)

const version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Config    string `help:"YAML rendering configuration file" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`

	Stdin  io.Reader `kong:"-"`
	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// CLI defines the command-line interface for chordsheet.
type CLI struct {
	Globals

	Parse       ParseCmd       `cmd:"" help:"Parse a chord sheet and print a summary"`
	Transpose   TransposeCmd   `cmd:"" help:"Transpose a chord sheet by semitones"`
	ChangeKey   ChangeKeyCmd   `cmd:"" name:"change-key" help:"Change the key of a chord sheet"`
	Format      FormatCmd      `cmd:"" help:"Render a chord sheet as ChordPro, text or HTML"`
	Serialize   SerializeCmd   `cmd:"" help:"Serialize a chord sheet to JSON, YAML or msgpack"`
	Deserialize DeserializeCmd `cmd:"" help:"Render a serialized song"`
	Fingerprint FingerprintCmd `cmd:"" help:"Print the BLAKE3 fingerprint of chord sheets"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// AfterApply configures logging once flags are parsed.
func (g *Globals) AfterApply() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLoggerTo(g.stderr(), level, format)
	return nil
}

func (g *Globals) stdin() io.Reader {
	if g.Stdin == nil {
		return os.Stdin
	}
	return g.Stdin
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// configuration loads the rendering configuration, falling back to the
// defaults when no file is given.
func (g *Globals) configuration() (song.Configuration, error) {
	if g.Config == "" {
		return song.DefaultConfiguration(), nil
	}
	return song.LoadConfiguration(g.Config)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	_, err := fmt.Fprintf(g.stdout(), "chordsheet version %s\n", version)
	return err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("chordsheet"),
		kong.Description("Chord sheet parser, transposer and formatter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		logging.ErrorContext(context.Background(), "command_failed", "command", ctx.Command(), "error", err)
	}
	ctx.FatalIfErrorf(err)
}
