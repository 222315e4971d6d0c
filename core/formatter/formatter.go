// Package formatter renders songs as ChordPro, plain text or HTML.
// Formatters only read the song; the rendering policy comes from a
// song.Configuration.
package formatter

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/cache"
	"github.com/FocuswithJustin/ChordSheet/core/errors"
	"github.com/FocuswithJustin/ChordSheet/core/music"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// Formatter renders a song.
type Formatter interface {
	Format(s *song.Song) string
}

// Kind names an output format.
type Kind string

// Supported output formats.
const (
	ChordPro Kind = "chordpro"
	Text     Kind = "text"
	HTML     Kind = "html"
)

// Kinds lists the supported output formats.
var Kinds = []Kind{ChordPro, Text, HTML}

// New returns the formatter for kind.
func New(kind Kind, cfg song.Configuration) (Formatter, error) {
	switch kind {
	case ChordPro:
		return &ChordProFormatter{Config: cfg}, nil
	case Text:
		return &TextFormatter{Config: cfg}, nil
	case HTML:
		return &HTMLFormatter{Config: cfg}, nil
	}
	return nil, errors.NewUnsupported("output format "+string(kind), "supported output formats are chordpro, text and html")
}

var chords = cache.NewChordCache(cache.DefaultConfig())

// renderChord renders the chords of a pair as they should be played. The
// chord moves by the line's {transpose} directive and towards the
// configured key, and down by the capo. Text that is not a chord is
// returned as is.
func renderChord(text string, line *song.Line, s *song.Song, cfg song.Configuration) string {
	chord := chords.Parse(strings.TrimSpace(text))
	if chord == nil {
		return text
	}

	songKey := music.ParseKey(s.Key())
	renderKey := music.ParseKey(cfg.Key)
	delta := transposeDistance(s.Capo(), line.TransposeKey, songKey, renderKey)

	var key *music.Key
	switch {
	case renderKey != nil:
		key = renderKey
	case line.Key != "":
		if k := music.ParseKey(line.Key); k != nil {
			key = k.Transpose(delta)
		}
	case songKey != nil:
		key = songKey.Transpose(delta)
	}

	chord = chord.Transpose(delta)
	if cfg.NormalizeChords {
		chord = chord.Normalize(key, false)
	}
	return chord.Format(cfg.UseUnicodeModifiers)
}

// transposeDistance combines the capo, a {transpose} value (semitones or a
// key) and the distance from the song key to the render key.
func transposeDistance(capo int, transposeKey string, songKey, renderKey *music.Key) int {
	delta := -capo
	if n, err := strconv.Atoi(transposeKey); err == nil {
		delta += n
	} else if k := music.ParseKey(transposeKey); k != nil && songKey != nil {
		delta += music.Distance(songKey, k)
	}
	if renderKey != nil && songKey != nil {
		delta += music.Distance(songKey, renderKey)
	}
	return delta
}

// evaluate renders an expression against the song metadata.
func evaluate(e *song.Expression, s *song.Song, cfg song.Configuration) string {
	return e.Evaluate(s.Metadata(), separator(cfg))
}

func separator(cfg song.Configuration) string {
	if cfg.Metadata.Separator == "" {
		return song.DefaultSeparator
	}
	return cfg.Metadata.Separator
}

// bodyParagraphs returns the paragraphs to render, with choruses expanded
// when configured.
func bodyParagraphs(s *song.Song, cfg song.Configuration) []*song.Paragraph {
	if cfg.ExpandChorusDirective {
		return s.ExpandedBodyParagraphs()
	}
	return s.BodyParagraphs()
}
