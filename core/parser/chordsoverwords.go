package parser

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/builder"
	"github.com/FocuswithJustin/ChordSheet/core/cache"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

var chordCache = cache.NewChordCache(cache.DefaultConfig())

var (
	frontmatterPattern   = regexp.MustCompile(`^\s*([A-Za-z_][\w-]*)\s*:\s*(.*?)\s*$`)
	sectionHeaderPattern = regexp.MustCompile(`(?i)^\s*(verse|chorus|bridge)(\s+[^:]*)?:\s*$`)
)

// barSymbols may appear between chords on a chord line.
var barSymbols = map[string]bool{"|": true, "||": true, "/": true, "-": true}

// isChordLine reports whether every word on the line is a chord or a bar
// symbol, with at least one chord.
func isChordLine(line string) bool {
	chords := 0
	for _, word := range strings.Fields(line) {
		switch {
		case barSymbols[word]:
		case chordCache.Parse(word) != nil:
			chords++
		default:
			return false
		}
	}
	return chords > 0
}

type placedChord struct {
	column int
	text   string
}

// chordColumns returns the chords on a chord line with their rune column.
func chordColumns(line string) []placedChord {
	var chords []placedChord
	runes := []rune(line)
	for i := 0; i < len(runes); {
		if runes[i] == ' ' || runes[i] == '\t' {
			i++
			continue
		}
		start := i
		for i < len(runes) && runes[i] != ' ' && runes[i] != '\t' {
			i++
		}
		word := string(runes[start:i])
		if !barSymbols[word] {
			chords = append(chords, placedChord{column: start, text: word})
		}
	}
	return chords
}

// pairChords splits lyrics at the columns of the chords above them. Lyrics
// before the first chord become a text token; chords past the end of the
// lyrics get empty lyrics.
func (s *tokenStream) pairChords(chordLine, lyrics string, number int) {
	chords := chordColumns(chordLine)
	runes := []rune(lyrics)
	slice := func(from, to int) string {
		from, to = min(from, len(runes)), min(to, len(runes))
		return string(runes[from:to])
	}
	offsetOf := func(column int) int {
		return s.offset + len(slice(0, column))
	}

	if len(chords) > 0 && chords[0].column > 0 && len(runes) > 0 {
		s.add(builder.Text(slice(0, chords[0].column)).At(number, 1, s.offset))
	}
	for i, c := range chords {
		end := len(runes)
		if i+1 < len(chords) {
			end = chords[i+1].column
		}
		s.add(builder.Pair(c.text, slice(c.column, end)).At(number, c.column+1, offsetOf(c.column)))
	}
}

// sectionTracker opens and closes sections for dialects that mark them
// with headers instead of directives.
type sectionTracker struct {
	stream  *tokenStream
	open    song.LineType
	content bool
}

func (t *sectionTracker) start(section song.LineType, label string, number int) {
	t.end(number)
	t.stream.add(builder.Directive(song.SectionStartTag(section), label).At(number, 1, t.stream.offset))
	t.stream.add(builder.NewLine().At(number, 1, t.stream.offset))
	t.open = section
	t.content = false
}

func (t *sectionTracker) end(number int) {
	if t.open == song.None || t.open == "" {
		return
	}
	t.stream.add(builder.Directive("end_of_"+string(t.open), "").At(number, 1, t.stream.offset))
	t.stream.add(builder.NewLine().At(number, 1, t.stream.offset))
	t.open = song.None
}

// blank closes a section that already has content.
func (t *sectionTracker) blank(number int) {
	if t.content {
		t.end(number)
	}
}

// ChordsOverWordsParser recognizes sheets with chord lines above lyric
// lines, such as:
//
//	title: Let it be
//	key: C
//	---
//	Verse 1:
//	       Am         C/G
//	Let it be, let it be
type ChordsOverWordsParser struct{}

// Parse parses a chords over words sheet.
func (p *ChordsOverWordsParser) Parse(input string) (*song.Song, error) {
	return build(p, input)
}

// Tokenize recognizes a chords over words sheet.
func (p *ChordsOverWordsParser) Tokenize(input string) ([]builder.Token, error) {
	lines, err := splitLines(input)
	if err != nil {
		return nil, err
	}
	s := &tokenStream{}
	sections := &sectionTracker{stream: s}

	i := s.frontmatter(lines)
	for i < len(lines) {
		line := lines[i]
		number := i + 1
		switch {
		case strings.TrimSpace(line) == "":
			sections.blank(number)
		case directiveLinePattern.MatchString(line) && s.directive(line, number):
		case strings.HasPrefix(line, "#"):
			s.add(builder.Comment(line[1:]).At(number, 1, s.offset))
		case sectionHeaderPattern.MatchString(line):
			m := sectionHeaderPattern.FindStringSubmatch(line)
			sections.start(song.LineType(strings.ToLower(m[1])), strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")), number)
			s.offset += len(line) + 1
			i++
			continue
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

// frontmatter emits "key: value" header lines closed by "---" as
// directives and returns the index of the first body line. An optional
// "---" may open the header.
func (s *tokenStream) frontmatter(lines []string) int {
	start := 0
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		start = 1
	}
	end := -1
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "---" {
			end = i
			break
		}
		if line != "" && !frontmatterPattern.MatchString(line) {
			return 0
		}
	}
	if end < 0 {
		return 0
	}
	if start == 1 {
		s.offset += len(lines[0]) + 1
	}
	for i := start; i < end; i++ {
		if m := frontmatterPattern.FindStringSubmatch(lines[i]); m != nil {
			s.add(builder.Directive(m[1], m[2]).At(i+1, 1, s.offset))
			s.endLine(i+1, len(lines[i]))
			continue
		}
		s.offset += len(lines[i]) + 1
	}
	s.offset += len(lines[end]) + 1
	return end + 1
}

// chordsOrLyrics handles a chord line, optionally followed by its lyrics,
// or a plain lyrics line. It returns the index of the next line.
func (s *tokenStream) chordsOrLyrics(lines []string, i int) int {
	line, number := lines[i], i+1
	if !isChordLine(line) {
		s.add(builder.Text(line).At(number, 1, s.offset))
		s.endLine(number, len(line))
		return i + 1
	}
	if i+1 < len(lines) && isLyricsLine(lines[i+1]) {
		s.offset += len(line) + 1
		lyrics := lines[i+1]
		s.pairChords(line, lyrics, number+1)
		s.endLine(number+1, len(lyrics))
		return i + 2
	}
	s.pairChords(line, "", number)
	s.endLine(number, len(line))
	return i + 1
}

// isLyricsLine reports whether a line can carry the chords above it.
func isLyricsLine(line string) bool {
	if strings.TrimSpace(line) == "" || isChordLine(line) {
		return false
	}
	if directiveLinePattern.MatchString(line) || sectionHeaderPattern.MatchString(line) {
		return false
	}
	return !ugHeaderPattern.MatchString(strings.TrimSpace(line))
}
