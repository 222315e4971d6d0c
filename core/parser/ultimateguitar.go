package parser

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/builder"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// ugHeaderPattern matches Ultimate Guitar section headers such as
// "[Verse 1]", "[Chorus]" or "[Intro]".
var ugHeaderPattern = regexp.MustCompile(`(?i)^\[((verse|chorus|bridge|intro|outro|pre-chorus|solo|interlude|instrumental)[^\]]*)\]$`)

var ugSections = map[string]song.LineType{
	"verse":  song.Verse,
	"chorus": song.Chorus,
	"bridge": song.Bridge,
}

// UltimateGuitarParser recognizes chords over words sheets as published
// on Ultimate Guitar. Verse, chorus and bridge headers open sections,
// which close at the next blank line; other headers become comments.
type UltimateGuitarParser struct{}

// Parse parses an Ultimate Guitar sheet.
func (p *UltimateGuitarParser) Parse(input string) (*song.Song, error) {
	return build(p, input)
}

// Tokenize recognizes an Ultimate Guitar sheet.
func (p *UltimateGuitarParser) Tokenize(input string) ([]builder.Token, error) {
	lines, err := splitLines(input)
	if err != nil {
		return nil, err
	}
	s := &tokenStream{}
	sections := &sectionTracker{stream: s}

	for i := 0; i < len(lines); {
		line := lines[i]
		number := i + 1
		trimmed := strings.TrimSpace(line)
		m := ugHeaderPattern.FindStringSubmatch(trimmed)
		switch {
		case trimmed == "":
			sections.blank(number)
		case m != nil:
			if section, ok := ugSections[strings.ToLower(m[2])]; ok {
				sections.start(section, m[1], number)
				s.offset += len(line) + 1
				i++
				continue
			}
			sections.end(number)
			s.add(builder.Directive(song.CommentTag, m[1]).At(number, 1, s.offset))
		default:
			i = s.chordsOrLyrics(lines, i)
			sections.content = true
			continue
		}
		s.endLine(number, len(line))
		i++
	}
	sections.end(len(lines))
	return s.tokens, nil
}
