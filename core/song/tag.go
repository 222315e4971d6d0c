package song

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/errors"
)

// Directive names. See https://www.chordpro.org/chordpro/chordpro-directives/
const (
	Album     = "album"
	Arranger  = "arranger"
	Artist    = "artist"
	Capo      = "capo"
	Composer  = "composer"
	Copyright = "copyright"
	Duration  = "duration"
	KeyTag    = "key"
	Lyricist  = "lyricist"
	SortTitle = "sorttitle"
	Subtitle  = "subtitle"
	Tempo     = "tempo"
	Time      = "time"
	Title     = "title"
	Year      = "year"

	CommentTag = "comment"
	ChorusTag  = "chorus"
	NewKey     = "new_key"
	Transpose  = "transpose"

	StartOfBridge = "start_of_bridge"
	EndOfBridge   = "end_of_bridge"
	StartOfChorus = "start_of_chorus"
	EndOfChorus   = "end_of_chorus"
	StartOfGrid   = "start_of_grid"
	EndOfGrid     = "end_of_grid"
	StartOfTab    = "start_of_tab"
	EndOfTab      = "end_of_tab"
	StartOfVerse  = "start_of_verse"
	EndOfVerse    = "end_of_verse"

	ChordColour = "chordcolour"
	ChordFont   = "chordfont"
	ChordSize   = "chordsize"
	TextColour  = "textcolour"
	TextFont    = "textfont"
	TextSize    = "textsize"
	TitleColour = "titlecolour"
	TitleFont   = "titlefont"
	TitleSize   = "titlesize"
)

// customMetaPrefix marks user defined meta directives such as {x_source}.
const customMetaPrefix = "x_"

var aliases = map[string]string{
	"t":   Title,
	"st":  Subtitle,
	"c":   CommentTag,
	"soc": StartOfChorus,
	"eoc": EndOfChorus,
	"sov": StartOfVerse,
	"eov": EndOfVerse,
	"sob": StartOfBridge,
	"eob": EndOfBridge,
	"sot": StartOfTab,
	"eot": EndOfTab,
	"sog": StartOfGrid,
	"eog": EndOfGrid,
	"cf":  ChordFont,
	"cs":  ChordSize,
	"tf":  TextFont,
	"ts":  TextSize,
	"nk":  NewKey,
}

var metaTags = map[string]bool{
	Album: true, Arranger: true, Artist: true, Capo: true, Composer: true,
	Copyright: true, Duration: true, KeyTag: true, Lyricist: true,
	SortTitle: true, Subtitle: true, Tempo: true, Time: true, Title: true,
	Year: true,
}

var inlineFontTags = map[string]bool{
	ChordColour: true, ChordFont: true, ChordSize: true,
	TextColour: true, TextFont: true, TextSize: true,
}

// sectionStarts maps section opening directives to the section they open.
var sectionStarts = map[string]LineType{
	StartOfBridge: Bridge,
	StartOfChorus: Chorus,
	StartOfGrid:   Grid,
	StartOfTab:    Tab,
	StartOfVerse:  Verse,
}

// sectionEnds maps section closing directives to the section they close.
var sectionEnds = map[string]LineType{
	EndOfBridge: Bridge,
	EndOfChorus: Chorus,
	EndOfGrid:   Grid,
	EndOfTab:    Tab,
	EndOfVerse:  Verse,
}

// Trace records where a node was found in the source document. Zero values
// mean unknown.
type Trace struct {
	Line   int
	Column int
	Offset int
}

// Tag is a directive such as {title: Let it be} or {start_of_chorus}.
type Tag struct {
	name         string
	originalName string
	Value        string
	Trace
}

// NewTag creates a tag. Short names are expanded, so NewTag("t", "X") has
// Name() "title" and OriginalName() "t".
func NewTag(name, value string) *Tag {
	return NewTagAt(name, value, Trace{})
}

// NewTagAt creates a tag with source position information.
func NewTagAt(name, value string, trace Trace) *Tag {
	name = strings.TrimSpace(name)
	full := name
	if alias, ok := aliases[strings.ToLower(name)]; ok {
		full = alias
	}
	return &Tag{name: full, originalName: name, Value: strings.TrimSpace(value), Trace: trace}
}

var (
	metaDirectivePattern = regexp.MustCompile(`^meta:\s*([^:\s]+)(?:\s+(.+))?$`)
	directivePattern     = regexp.MustCompile(`^([^:\s]+)(?:\s*:\s*(.*?)|\s+(.*?))?\s*$`)
)

// ParseTag parses directive text with or without surrounding braces:
// "{title: X}", "title: X", "title X" and "{meta: title X}" all produce a
// title tag. It returns nil for text that is not a directive.
func ParseTag(text string) *Tag {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil
	}
	if m := metaDirectivePattern.FindStringSubmatch(s); m != nil {
		return NewTag(m[1], m[2])
	}
	if m := directivePattern.FindStringSubmatch(s); m != nil {
		return NewTag(m[1], m[2]+m[3])
	}
	return nil
}

// ParseTagOrFail is like ParseTag but returns a ParseError.
func ParseTagOrFail(text string) (*Tag, error) {
	if t := ParseTag(text); t != nil {
		return t, nil
	}
	return nil, errors.NewParse("tag", text)
}

// Name returns the full directive name.
func (t *Tag) Name() string { return t.name }

// OriginalName returns the name as it was written, possibly a short alias.
func (t *Tag) OriginalName() string { return t.originalName }

// SetName renames the tag, expanding aliases.
func (t *Tag) SetName(name string) {
	n := NewTag(name, "")
	t.name, t.originalName = n.name, n.originalName
}

// HasValue reports whether the tag value is non-empty.
func (t *Tag) HasValue() bool { return t.Value != "" }

// IsMetaTag reports whether the tag is a standard meta directive or a
// custom x_ directive.
func (t *Tag) IsMetaTag() bool {
	return metaTags[t.name] || strings.HasPrefix(t.name, customMetaPrefix)
}

// IsRenderable reports whether the tag renders inline: comments, and
// section openers that carry a label.
func (t *Tag) IsRenderable() bool {
	return t.name == CommentTag || t.HasRenderableLabel()
}

// HasRenderableLabel reports whether the tag opens a section and has a
// label to show, as in {start_of_verse: Verse 1}.
func (t *Tag) HasRenderableLabel() bool {
	_, ok := sectionStarts[t.name]
	return ok && t.HasValue()
}

// IsSectionDelimiter reports whether the tag opens or closes a section.
func (t *Tag) IsSectionDelimiter() bool {
	return t.IsSectionStart() || t.IsSectionEnd()
}

// IsSectionStart reports whether the tag opens a section.
func (t *Tag) IsSectionStart() bool {
	_, ok := sectionStarts[t.name]
	return ok
}

// IsSectionEnd reports whether the tag closes a section.
func (t *Tag) IsSectionEnd() bool {
	_, ok := sectionEnds[t.name]
	return ok
}

// SectionType returns the section a delimiter opens or closes, or None.
func (t *Tag) SectionType() LineType {
	if s, ok := sectionStarts[t.name]; ok {
		return s
	}
	if s, ok := sectionEnds[t.name]; ok {
		return s
	}
	return None
}

// IsInlineFontTag reports whether the tag changes the text or chord font.
func (t *Tag) IsInlineFontTag() bool {
	return inlineFontTags[t.name]
}

// Label returns the section label of a section opener, e.g. "Verse 1".
func (t *Tag) Label() string {
	if t.IsSectionStart() {
		return t.Value
	}
	return ""
}

// Clone returns a copy of the tag.
func (t *Tag) Clone() Item {
	c := *t
	return &c
}

// WithValue returns a copy of the tag with a different value.
func (t *Tag) WithValue(value string) *Tag {
	c := *t
	c.Value = value
	return &c
}

// String renders the tag in ChordPro form using its original name.
func (t *Tag) String() string {
	if t.HasValue() {
		return "{" + t.originalName + ": " + t.Value + "}"
	}
	return "{" + t.originalName + "}"
}

func (t *Tag) isItem() {}

// SectionStartTag returns the directive that opens a section of the given
// type, or "" for None.
func SectionStartTag(section LineType) string {
	for name, s := range sectionStarts {
		if s == section {
			return name
		}
	}
	return ""
}
