package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/formatter"
	"github.com/FocuswithJustin/ChordSheet/core/serializer"
	"github.com/FocuswithJustin/ChordSheet/core/song"
	"github.com/FocuswithJustin/ChordSheet/internal/logging"
)

// Source holds the input flags shared by commands that read a chord sheet.
type Source struct {
	Path   string `arg:"" help:"Chord sheet or serialized song (- for stdin, .xz is decompressed)"`
	Format string `short:"f" help:"Input dialect (auto, chordpro, chords-over-words, ultimate-guitar)" default:"auto" enum:"auto,chordpro,chords-over-words,ultimate-guitar"`
}

func (s Source) context() context.Context {
	return logging.WithSource(context.Background(), s.Path)
}

// Rendering holds the output flags shared by commands that render a song.
type Rendering struct {
	To       string `short:"t" help:"Output format (chordpro, text, html)" default:"chordpro" enum:"chordpro,text,html"`
	Output   string `short:"o" help:"Output file (- for stdout, .xz is compressed)" default:"-"`
	Evaluate bool   `help:"Evaluate meta-expressions"`
	Unicode  bool   `help:"Render sharps and flats as unicode"`
}

func (r Rendering) render(ctx context.Context, g *Globals, s *song.Song, opts ...song.Option) error {
	out, err := r.format(g, s, opts...)
	if err != nil {
		return err
	}
	return g.writeOutput(ctx, r.Output, r.To, []byte(out), false)
}

func (r Rendering) format(g *Globals, s *song.Song, opts ...song.Option) (string, error) {
	cfg, err := g.configuration()
	if err != nil {
		return "", err
	}
	if r.Evaluate {
		cfg.Evaluate = true
	}
	if r.Unicode {
		cfg.UseUnicodeModifiers = true
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	f, err := formatter.New(formatter.Kind(r.To), cfg)
	if err != nil {
		return "", err
	}
	out := f.Format(s)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// ParseCmd prints a summary of a chord sheet and its warnings.
type ParseCmd struct {
	Source
	Strict bool `help:"Fail when the sheet has structural warnings"`
}

func (c *ParseCmd) Run(g *Globals) error {
	ctx := c.context()
	s, err := g.loadSong(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	var b strings.Builder
	if title := s.Title(); title != "" {
		fmt.Fprintf(&b, "Title:      %s\n", title)
	}
	if artist := s.Artist(); artist != "" {
		fmt.Fprintf(&b, "Artist:     %s\n", artist)
	}
	if key := s.Key(); key != "" {
		fmt.Fprintf(&b, "Key:        %s\n", key)
	}
	if capo := s.Capo(); capo != 0 {
		fmt.Fprintf(&b, "Capo:       %d\n", capo)
	}
	fmt.Fprintf(&b, "Lines:      %d\n", len(s.Lines))
	fmt.Fprintf(&b, "Paragraphs: %d\n", len(s.BodyParagraphs()))
	fmt.Fprintf(&b, "Warnings:   %d\n", len(s.Warnings))
	for _, w := range s.Warnings {
		fmt.Fprintf(&b, "  %s\n", w)
	}

	if err := g.writeOutput(ctx, stdio, "summary", []byte(b.String()), false); err != nil {
		return err
	}
	if c.Strict && len(s.Warnings) > 0 {
		return fmt.Errorf("%s: %d structural warnings", c.Path, len(s.Warnings))
	}
	return nil
}

// TransposeCmd shifts every chord and key by a number of semitones.
type TransposeCmd struct {
	Source
	Rendering
	Steps           int  `arg:"" help:"Semitones to transpose by (negative for down, after --)"`
	NormalizeSuffix bool `name:"normalize-suffix" help:"Normalize chord suffixes while transposing"`
}

func (c *TransposeCmd) Run(g *Globals) error {
	ctx := c.Source.context()
	s, err := g.loadSong(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}
	transposed := s.Transpose(c.Steps, c.NormalizeSuffix)
	logging.SongTransformed(ctx, "transpose", "steps", c.Steps, "key", transposed.Key())
	return c.render(ctx, g, transposed)
}

// ChangeKeyCmd re-keys a sheet that declares its key.
type ChangeKeyCmd struct {
	Source
	Rendering
	Key  string `arg:"" help:"New key"`
	From string `help:"Key to assume when the sheet does not declare one"`
}

func (c *ChangeKeyCmd) Run(g *Globals) error {
	ctx := c.Source.context()
	s, err := g.loadSong(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}
	from := s.Key()
	if from == "" && c.From != "" {
		logging.InfoContext(ctx, "key_assumed", "key", c.From)
		s = s.SetKey(c.From)
		from = c.From
	}
	changed, err := s.ChangeKey(c.Key)
	if err != nil {
		return err
	}
	logging.SongTransformed(ctx, "change_key", "from", from, "to", changed.Key())
	return c.render(ctx, g, changed)
}

// FormatCmd renders a sheet without changing it.
type FormatCmd struct {
	Source
	Rendering
	Key          string `short:"k" help:"Render chords in this key"`
	ExpandChorus bool   `name:"expand-chorus" help:"Replace {chorus} with the preceding chorus"`
	OutDir       string `name:"out-dir" help:"Write to a file named after the song title in this directory" type:"path"`
	CSS          string `help:"Print the default HTML stylesheet scoped to this selector instead of a song" placeholder:"SELECTOR"`
}

func (c *FormatCmd) Run(g *Globals) error {
	ctx := c.Source.context()
	if c.CSS != "" {
		css := (&formatter.HTMLFormatter{}).CSS(strings.TrimSpace(c.CSS))
		return g.writeOutput(ctx, c.Output, "css", []byte(css), false)
	}

	s, err := g.loadSong(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}

	var opts []song.Option
	if c.Key != "" {
		opts = append(opts, song.WithKey(c.Key))
	}
	if c.ExpandChorus {
		opts = append(opts, song.WithExpandChorusDirective(true))
	}

	if c.OutDir == "" {
		return c.render(ctx, g, s, opts...)
	}
	out, err := c.format(g, s, opts...)
	if err != nil {
		return err
	}
	path, err := outputPath(c.OutDir, c.Path, s.Title(), extensionFor(formatter.Kind(c.To)))
	if err != nil {
		return err
	}
	if err := g.writeOutput(ctx, path, c.To, []byte(out), false); err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.stdout(), path)
	return err
}

func extensionFor(kind formatter.Kind) string {
	switch kind {
	case formatter.HTML:
		return ".html"
	case formatter.Text:
		return ".txt"
	}
	return ".cho"
}

// SerializeCmd writes the plain object form of a sheet.
type SerializeCmd struct {
	Source
	Encoding string `short:"e" help:"Encoding (json, yaml, msgpack)" default:"json" enum:"json,yaml,msgpack"`
	Output   string `short:"o" help:"Output file (- for stdout, .xz is compressed)" default:"-"`
	XZ       bool   `name:"xz" help:"Compress the output with xz"`
}

func (c *SerializeCmd) Run(g *Globals) error {
	ctx := c.context()
	s, err := g.loadSong(ctx, c.Path, c.Format)
	if err != nil {
		return err
	}
	data, err := serializer.Encode(s, serializer.Encoding(c.Encoding))
	if err != nil {
		return err
	}
	if c.Encoding != string(serializer.Msgpack) && len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return g.writeOutput(ctx, c.Output, c.Encoding, data, c.XZ)
}

// DeserializeCmd renders a song from its plain object form.
type DeserializeCmd struct {
	Rendering
	Path     string `arg:"" help:"Serialized song (- for stdin, .xz is decompressed)" default:"-"`
	Encoding string `short:"e" help:"Encoding, detected from the file extension when empty (json, yaml, msgpack)"`
}

func (c *DeserializeCmd) Run(g *Globals) error {
	ctx := logging.WithSource(context.Background(), c.Path)
	in, err := g.readInput(ctx, c.Path)
	if err != nil {
		return err
	}

	enc := serializer.Encoding(c.Encoding)
	if enc == "" {
		detected, ok := encodingFor(in.kind)
		if !ok {
			detected = serializer.JSON
			logging.WarnContext(ctx, "encoding_assumed", "encoding", string(detected))
		}
		enc = detected
	}

	s, err := serializer.Decode(in.data, enc)
	if err != nil {
		return fmt.Errorf("decode %s: %w", c.Path, err)
	}
	logging.SongParsed(ctx, string(enc), len(s.Lines), 0)
	return c.render(ctx, g, s)
}

// FingerprintCmd prints content fingerprints in the style of b3sum.
type FingerprintCmd struct {
	Paths  []string `arg:"" help:"Chord sheets or serialized songs" default:"-"`
	Format string   `short:"f" help:"Input dialect (auto, chordpro, chords-over-words, ultimate-guitar)" default:"auto" enum:"auto,chordpro,chords-over-words,ultimate-guitar"`
}

func (c *FingerprintCmd) Run(g *Globals) error {
	for _, path := range c.Paths {
		ctx := logging.WithSource(context.Background(), path)
		s, err := g.loadSong(ctx, path, c.Format)
		if err != nil {
			return err
		}
		sum, err := serializer.Fingerprint(s)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(g.stdout(), "%s  %s\n", sum, path); err != nil {
			return err
		}
	}
	return nil
}
