package music

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/errors"
)

// Chord is a root key with an optional suffix (quality) and bass key, such
// as Esus4/G# or 1sus4/#3. Root and bass always share a notation.
type Chord struct {
	root   *Key
	suffix string
	bass   *Key
}

var chordRoots = []struct {
	chordType ChordType
	pattern   string
}{
	{Solfege, `(Do|Re|Mi|Fa|Sol|La|Si)` + modifierPattern + `?`},
	{Symbol, `([A-G])` + modifierPattern + `?`},
	{Numeric, modifierPattern + `?([1-7])`},
	{Numeral, modifierPattern + `?(VII|VI|V|IV|III|II|I|vii|vi|v|iv|iii|ii|i)`},
}

var chordPatterns = buildChordPatterns()

// validSuffix rejects suffixes that cannot belong to a chord, so that words
// like "Chorus" are not read as C + "horus".
var validSuffix = regexp.MustCompile(`^(?:[0-9#b♯♭+\-()°ø△Δ^,./]|m|ma|maj|mi|min|M|sus|add|dim|aug|alt|no|omit)*$`)

func buildChordPatterns() map[ChordType]*regexp.Regexp {
	patterns := make(map[ChordType]*regexp.Regexp, len(chordRoots))
	for _, r := range chordRoots {
		patterns[r.chordType] = regexp.MustCompile(`^(` + r.pattern + `)(.*?)(?:/(` + r.pattern + `))?$`)
	}
	return patterns
}

// NewChord assembles a chord. Bass may be nil.
func NewChord(root *Key, suffix string, bass *Key) (*Chord, error) {
	if root == nil {
		return nil, errors.NewValidation("root", "chord root is required")
	}
	if bass != nil && bass.chordType != root.chordType {
		return nil, errors.NewValidation("bass",
			fmt.Sprintf("bass notation %s does not match root notation %s", bass.chordType, root.chordType))
	}
	return &Chord{root: root, suffix: suffix, bass: bass}, nil
}

// ParseChord parses a chord string. Surrounding whitespace is ignored.
// It returns nil when the text is not a chord in any notation.
func ParseChord(s string) *Chord {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	solfege := parseChordAs(trimmed, Solfege)
	symbol := parseChordAs(trimmed, Symbol)
	if solfege != nil && symbol != nil && preferSymbolSuffix(symbol.suffix) {
		return symbol
	}
	for _, c := range []*Chord{solfege, symbol} {
		if c != nil {
			return c
		}
	}
	if c := parseChordAs(trimmed, Numeric); c != nil {
		return c
	}
	return parseChordAs(trimmed, Numeral)
}

// preferSymbolSuffix resolves "Fadd9" and friends, which also read as the
// solfege note Fa followed by a nonsense suffix.
func preferSymbolSuffix(suffix string) bool {
	for _, prefix := range []string{"add", "aug", "alt"} {
		if strings.HasPrefix(suffix, prefix) {
			return true
		}
	}
	return false
}

// ParseChordOrFail is like ParseChord but returns a ParseError for
// unrecognized input.
func ParseChordOrFail(s string) (*Chord, error) {
	c := ParseChord(s)
	if c == nil {
		return nil, errors.NewParse("chord", s)
	}
	return c, nil
}

func parseChordAs(s string, chordType ChordType) *Chord {
	m := chordPatterns[chordType].FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	// m[1] root, m[2..3] root groups, m[4] suffix, m[5] bass, m[6..7] bass groups
	suffix := m[4]
	if !validSuffix.MatchString(suffix) {
		return nil
	}

	root := ParseKeyAsType(m[1], chordType)
	if root == nil {
		return nil
	}
	root.original = ""
	if chordType != Numeral {
		root.minor = isMinorSuffix(suffix)
	}

	var bass *Key
	if m[5] != "" {
		bass = ParseKeyAsType(m[5], chordType)
		if bass == nil {
			return nil
		}
		bass.original = ""
	}
	return &Chord{root: root, suffix: suffix, bass: bass}
}

// Root returns the root key.
func (c *Chord) Root() *Key { return c.root }

// Bass returns the bass key, or nil.
func (c *Chord) Bass() *Key { return c.bass }

// Suffix returns the chord quality text.
func (c *Chord) Suffix() string { return c.suffix }

// Type returns the notation of the chord.
func (c *Chord) Type() ChordType { return c.root.chordType }

// IsChordSymbol reports whether the chord uses letter names.
func (c *Chord) IsChordSymbol() bool { return c.root.IsChordSymbol() }

// IsChordSolfege reports whether the chord uses solfege names.
func (c *Chord) IsChordSolfege() bool { return c.root.IsChordSolfege() }

// IsNumeric reports whether the chord uses numeric degrees.
func (c *Chord) IsNumeric() bool { return c.root.IsNumeric() }

// IsNumeral reports whether the chord uses roman numerals.
func (c *Chord) IsNumeral() bool { return c.root.IsNumeral() }

// IsMinor reports whether the chord is minor.
func (c *Chord) IsMinor() bool { return c.root.minor }

// MakeMinor returns the minor version of the chord.
func (c *Chord) MakeMinor() *Chord {
	if c.root.minor {
		return c.set(c.root, c.suffix, c.bass)
	}
	suffix := c.suffix
	if c.root.chordType != Numeral {
		suffix = "m" + suffix
	}
	return c.set(c.root.MakeMinor(), suffix, c.bass)
}

func (c *Chord) set(root *Key, suffix string, bass *Key) *Chord {
	return &Chord{root: root, suffix: suffix, bass: bass}
}

func (c *Chord) mapKeys(fn func(*Key) *Key) *Chord {
	var bass *Key
	if c.bass != nil {
		bass = fn(c.bass)
	}
	return c.set(fn(c.root), c.suffix, bass)
}

// Equals reports whether two chords have equal root, suffix and bass.
func (c *Chord) Equals(other *Chord) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.root.Equals(other.root) && c.suffix == other.suffix && c.bass.Equals(other.bass)
}

// Transpose moves root and bass by delta semitones.
func (c *Chord) Transpose(delta int) *Chord {
	return c.mapKeys(func(k *Key) *Key { return k.Transpose(delta) })
}

// TransposeUp moves the chord up one semitone, e.g. A becomes A#.
func (c *Chord) TransposeUp() *Chord { return c.Transpose(1) }

// TransposeDown moves the chord down one semitone, e.g. E becomes Eb.
func (c *Chord) TransposeDown() *Chord { return c.Transpose(-1) }

// UseModifier respells root and bass with the given accidental.
func (c *Chord) UseModifier(m Modifier) *Chord {
	return c.mapKeys(func(k *Key) *Key { return k.UseModifier(m) })
}

// Normalize cleans up the chord spelling:
//   - enharmonic roots and basses land on naturals (Fb becomes E, Si# becomes Do, 7# becomes 1)
//   - with a key, the root is spelled as it appears in that key's scale
//   - the bass is spelled in the scale of the root; for minor chords that is
//     the root's relative major, so Em/A# becomes Em/Bb
//   - with normalizeSuffix, the suffix is rewritten to its canonical alias
func (c *Chord) Normalize(key *Key, normalizeSuffix bool) *Chord {
	root := c.root.Normalize()
	if key != nil {
		root = root.NormalizeEnharmonics(key)
	}

	var bass *Key
	if c.bass != nil {
		bass = c.bass.Normalize().NormalizeEnharmonics(root)
	}

	suffix := c.suffix
	if normalizeSuffix {
		suffix = NormalizeSuffix(suffix)
	}
	return c.set(root, suffix, bass)
}

// ToChordSymbol converts the chord to letter names. Numeric and numeral
// chords need the tonal center ref.
func (c *Chord) ToChordSymbol(ref *Key) (*Chord, error) {
	return c.convert(func(k *Key) (*Key, error) { return k.ToChordSymbol(ref) }, Symbol)
}

// ToChordSolfege converts the chord to solfege names. Numeric and numeral
// chords need the tonal center ref.
func (c *Chord) ToChordSolfege(ref *Key) (*Chord, error) {
	return c.convert(func(k *Key) (*Key, error) { return k.ToChordSolfege(ref) }, Solfege)
}

// ToNumeric converts the chord to numeric degrees. Symbol and solfege
// chords need the tonal center ref.
func (c *Chord) ToNumeric(ref *Key) (*Chord, error) {
	return c.convert(func(k *Key) (*Key, error) { return k.ToNumeric(ref) }, Numeric)
}

// ToNumeral converts the chord to roman numerals. Symbol and solfege
// chords need the tonal center ref.
func (c *Chord) ToNumeral(ref *Key) (*Chord, error) {
	return c.convert(func(k *Key) (*Key, error) { return k.ToNumeral(ref) }, Numeral)
}

func (c *Chord) convert(fn func(*Key) (*Key, error), target ChordType) (*Chord, error) {
	root, err := fn(c.root)
	if err != nil {
		return nil, err
	}
	var bass *Key
	if c.bass != nil {
		if bass, err = fn(c.bass); err != nil {
			return nil, err
		}
		bass.minor = false
	}

	suffix := c.suffix
	from := c.root.chordType
	switch {
	case from != Numeral && target == Numeral && c.root.minor:
		suffix = stripMinorMarker(suffix)
	case from == Numeral && target != Numeral && c.root.minor:
		suffix = "m" + suffix
	}
	return c.set(root, suffix, bass), nil
}

// String renders the chord, e.g. "Esus4/G#".
func (c *Chord) String() string {
	return c.Format(false)
}

// Format renders the chord, optionally using ♯ and ♭.
func (c *Chord) Format(useUnicodeModifier bool) string {
	var sb strings.Builder
	sb.WriteString(c.root.render(false, useUnicodeModifier))
	sb.WriteString(c.suffix)
	if c.bass != nil {
		sb.WriteString("/")
		sb.WriteString(c.bass.render(false, useUnicodeModifier))
	}
	return sb.String()
}
