package music

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/errors"
)

// Key represents a key or note, such as Eb (symbol), Sol (solfege),
// #3 (numeric) or vii (numeral).
//
// The zero value is not a valid key; use ParseKey or the conversion methods.
type Key struct {
	chordType         ChordType
	index             int // diatonic index: letter C..B or degree 1..7
	modifier          Modifier
	minor             bool
	referenceGrade    int
	hasReference      bool
	preferredModifier Modifier
	original          string
}

const modifierPattern = `([#b♯♭])`

var keyPatterns = []struct {
	chordType ChordType
	re        *regexp.Regexp
}{
	{Solfege, regexp.MustCompile(`^(Do|Re|Mi|Fa|Sol|La|Si)` + modifierPattern + `?(m)?$`)},
	{Symbol, regexp.MustCompile(`^([A-G])` + modifierPattern + `?(m)?$`)},
	{Numeric, regexp.MustCompile(`^` + modifierPattern + `?([1-7])(m)?$`)},
	{Numeral, regexp.MustCompile(`^` + modifierPattern + `?(VII|VI|V|IV|III|II|I|vii|vi|v|iv|iii|ii|i)$`)},
}

// ParseKey parses a key string such as "C", "F#m", "Sib", "b3" or "vi".
// Surrounding whitespace is ignored. It returns nil when the text is not a
// key in any notation, so it is safe to use as a probe.
func ParseKey(s string) *Key {
	trimmed := strings.TrimSpace(s)
	for _, p := range keyPatterns {
		if k := parseKeyWith(trimmed, p.chordType, p.re); k != nil {
			return k
		}
	}
	return nil
}

// ParseKeyAsType parses a key string in one specific notation.
func ParseKeyAsType(s string, chordType ChordType) *Key {
	trimmed := strings.TrimSpace(s)
	for _, p := range keyPatterns {
		if p.chordType == chordType {
			return parseKeyWith(trimmed, p.chordType, p.re)
		}
	}
	return nil
}

// ParseKeyOrFail is like ParseKey but returns a ParseError for unrecognized input.
func ParseKeyOrFail(s string) (*Key, error) {
	k := ParseKey(s)
	if k == nil {
		return nil, errors.NewParse("key", s)
	}
	return k, nil
}

// WrapKey returns k as a key: strings are parsed with ParseKey and keys
// pass through unchanged.
func WrapKey[T string | *Key](k T) *Key {
	switch v := any(k).(type) {
	case *Key:
		return v
	case string:
		return ParseKey(v)
	}
	return nil
}

func parseKeyWith(s string, chordType ChordType, re *regexp.Regexp) *Key {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	k := &Key{chordType: chordType, original: s}
	switch chordType {
	case Symbol, Solfege:
		k.index = nameIndex(m[1], chordType)
		k.modifier = ParseModifier(m[2])
		k.minor = m[3] != ""
	case Numeric:
		k.modifier = ParseModifier(m[1])
		n, _ := strconv.Atoi(m[2])
		k.index = n - 1
		k.minor = m[3] != ""
	case Numeral:
		k.modifier = ParseModifier(m[1])
		k.index = nameIndex(strings.ToUpper(m[2]), Numeral)
		k.minor = m[2] == strings.ToLower(m[2])
	}
	if k.index < 0 {
		return nil
	}
	return k
}

func nameIndex(name string, chordType ChordType) int {
	var names [7]string
	switch chordType {
	case Symbol:
		names = symbolNames
	case Solfege:
		names = solfegeNames
	case Numeral:
		names = numeralNames
	default:
		return -1
	}
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// Distance returns the distance in semitones (0-11) from one key up to another.
func Distance(from, to *Key) int {
	return mod12(to.EffectiveGrade() - from.EffectiveGrade())
}

// DistanceTo returns the distance in semitones from k up to other.
func (k *Key) DistanceTo(other *Key) int {
	return Distance(k, other)
}

// SignedDistance returns the shortest signed semitone path from one key to
// another, in the range -5..6.
func SignedDistance(from, to *Key) int {
	d := Distance(from, to)
	if d > 6 {
		return d - 12
	}
	return d
}

// Type returns the notation of the key.
func (k *Key) Type() ChordType { return k.chordType }

// Is reports whether the key uses the given notation.
func (k *Key) Is(t ChordType) bool { return k.chordType == t }

// IsChordSymbol reports whether the key is a letter name.
func (k *Key) IsChordSymbol() bool { return k.Is(Symbol) }

// IsChordSolfege reports whether the key is a solfege name.
func (k *Key) IsChordSolfege() bool { return k.Is(Solfege) }

// IsNumeric reports whether the key is a numeric degree.
func (k *Key) IsNumeric() bool { return k.Is(Numeric) }

// IsNumeral reports whether the key is a roman numeral degree.
func (k *Key) IsNumeral() bool { return k.Is(Numeral) }

// Grade returns the semitone of the natural letter for symbol and solfege
// keys. The second result is false for degree-based keys.
func (k *Key) Grade() (int, bool) {
	if k.chordType.isDegreeBased() {
		return 0, false
	}
	return naturalSemitones[k.index], true
}

// Number returns the scale degree (1-7) for numeric and numeral keys. The
// second result is false for letter-based keys.
func (k *Key) Number() (int, bool) {
	if !k.chordType.isDegreeBased() {
		return 0, false
	}
	return k.index + 1, true
}

// Modifier returns the accidental of the key.
func (k *Key) Modifier() Modifier { return k.modifier }

// IsMinor reports whether the key is minor.
func (k *Key) IsMinor() bool { return k.minor }

// ReferenceKeyGrade returns the tonal center a degree-based key was derived from.
func (k *Key) ReferenceKeyGrade() (int, bool) { return k.referenceGrade, k.hasReference }

// PreferredModifier returns the accidental used to break spelling ties.
func (k *Key) PreferredModifier() Modifier { return k.preferredModifier }

// OriginalKeyString returns the text the key was parsed from, if any.
func (k *Key) OriginalKeyString() string { return k.original }

// relativeGrade is the semitone of the key within its own frame: C-relative
// for letters, tonic-relative for degrees.
func (k *Key) relativeGrade() int {
	return mod12(naturalSemitones[k.index] + k.modifier.offset())
}

// EffectiveGrade returns the absolute chromatic position (0-11) of the key.
// Degree-based keys without a reference key are measured from their tonic.
func (k *Key) EffectiveGrade() int {
	g := k.relativeGrade()
	if k.chordType.isDegreeBased() && k.hasReference {
		g += k.referenceGrade
	}
	return mod12(g)
}

func (k *Key) clone() *Key {
	c := *k
	c.original = ""
	return &c
}

// Equals reports whether two keys denote the same notation, note and mode.
func (k *Key) Equals(other *Key) bool {
	if k == nil || other == nil {
		return k == nil && other == nil
	}
	return k.chordType == other.chordType &&
		k.index == other.index &&
		k.modifier == other.modifier &&
		k.minor == other.minor
}

// withGrade returns a copy of the key moved to the given relative grade.
func (k *Key) withGrade(grade int, prefer Modifier) *Key {
	c := k.clone()
	c.index, c.modifier = spellPitch(grade, prefer)
	return c
}

// Transpose moves the key by delta semitones, preserving notation and mode.
// Black-key results keep the key's own accidental, then its preferred one,
// then follow the direction of travel (sharps up, flats down).
func (k *Key) Transpose(delta int) *Key {
	if mod12(delta) == 0 {
		return k.clone()
	}
	prefer := k.modifier
	if prefer == NoModifier {
		prefer = k.preferredModifier
	}
	if prefer == NoModifier {
		prefer = Sharp
		if delta < 0 {
			prefer = Flat
		}
	}
	return k.withGrade(k.relativeGrade()+delta, prefer)
}

// TransposeUp moves the key up one semitone.
func (k *Key) TransposeUp() *Key { return k.Transpose(1) }

// TransposeDown moves the key down one semitone.
func (k *Key) TransposeDown() *Key { return k.Transpose(-1) }

// CanBeFlat reports whether the natural note can take a flat without
// becoming another natural (C and F cannot).
func (k *Key) CanBeFlat() bool {
	return naturalIndex(naturalSemitones[k.index]-1) < 0
}

// CanBeSharp reports whether the natural note can take a sharp without
// becoming another natural (E and B cannot).
func (k *Key) CanBeSharp() bool {
	return naturalIndex(naturalSemitones[k.index]+1) < 0
}

// UseModifier respells the key with the given accidental. Natural keys are
// returned unchanged.
func (k *Key) UseModifier(m Modifier) *Key {
	if k.modifier == NoModifier || m == NoModifier || k.modifier == m {
		c := k.clone()
		if m != NoModifier {
			c.preferredModifier = m
		}
		return c
	}
	c := k.withGrade(k.relativeGrade(), m)
	c.preferredModifier = m
	return c
}

// Normalize rewrites enharmonic spellings that land on a natural note
// (B# becomes C, Fb becomes E, Mi# becomes Fa, 4b becomes 3), then respells
// remaining accidentals with the preferred modifier when one is set.
func (k *Key) Normalize() *Key {
	c := k.clone()
	if idx := naturalIndex(k.relativeGrade()); idx >= 0 && k.modifier != NoModifier {
		c.index, c.modifier = idx, NoModifier
	}
	if c.modifier != NoModifier && c.preferredModifier != NoModifier && c.modifier != c.preferredModifier {
		return c.UseModifier(c.preferredModifier)
	}
	return c
}

// NormalizeEnharmonics spells a letter-based key as it appears in the scale
// of ref. Minor references use their relative major. Chromatic notes follow
// the 1 b2 2 b3 3 4 #4 5 b6 6 b7 7 convention; notes that would need a
// double accidental fall back to the reference key's sharp/flat preference.
func (k *Key) NormalizeEnharmonics(ref *Key) *Key {
	if ref == nil || k.chordType.isDegreeBased() || ref.chordType.isDegreeBased() {
		return k.clone()
	}
	major := ref
	if ref.minor {
		major = ref.RelativeMajor()
	}
	pitch := k.EffectiveGrade()
	degree := chromaticDegree[mod12(pitch-major.EffectiveGrade())]
	index := (major.index + degree.index) % 7

	c := k.clone()
	if m, ok := spellAs(pitch, index); ok {
		c.index, c.modifier = index, m
		return c.Normalize()
	}
	c.index, c.modifier = spellPitch(pitch, major.accidentalPreference())
	return c
}

// accidentalPreference returns whether a key is conventionally written
// with sharps or flats.
func (k *Key) accidentalPreference() Modifier {
	if k.modifier != NoModifier {
		return k.modifier
	}
	major := k
	if k.minor {
		major = k.RelativeMajor()
		if major.modifier != NoModifier {
			return major.modifier
		}
	}
	if flatMajorKeys[major.relativeGrade()] {
		return Flat
	}
	return Sharp
}

// shiftDiatonic returns the key steps diatonic positions and semis
// semitones away, spelled on the resulting diatonic index when possible.
func (k *Key) shiftDiatonic(steps, semis int) *Key {
	c := k.clone()
	pitch := k.relativeGrade() + semis
	index := (k.index + steps) % 7
	if m, ok := spellAs(pitch, index); ok {
		c.index, c.modifier = index, m
		return c
	}
	c.index, c.modifier = spellPitch(pitch, k.modifier)
	return c
}

// RelativeMajor returns the major key sharing the signature of a minor key.
func (k *Key) RelativeMajor() *Key {
	if !k.minor {
		return k.clone()
	}
	c := k.shiftDiatonic(2, 3)
	c.minor = false
	return c
}

// RelativeMinor returns the minor key sharing the signature of a major key.
func (k *Key) RelativeMinor() *Key {
	if k.minor {
		return k.clone()
	}
	c := k.shiftDiatonic(5, 9)
	c.minor = true
	return c
}

// ToMajor returns the key with the same tonic in major.
func (k *Key) ToMajor() *Key {
	c := k.clone()
	c.minor = false
	return c
}

// MakeMinor returns the key with the same tonic in minor.
func (k *Key) MakeMinor() *Key {
	c := k.clone()
	c.minor = true
	return c
}

// ToChordSymbol converts the key to a letter name. Degree-based keys need
// the tonal center ref; solfege and symbol keys ignore it.
func (k *Key) ToChordSymbol(ref *Key) (*Key, error) {
	return k.toLetters(Symbol, ref)
}

// ToChordSolfege converts the key to a solfege name. Degree-based keys need
// the tonal center ref; solfege and symbol keys ignore it.
func (k *Key) ToChordSolfege(ref *Key) (*Key, error) {
	return k.toLetters(Solfege, ref)
}

func (k *Key) toLetters(target ChordType, ref *Key) (*Key, error) {
	if !k.chordType.isDegreeBased() {
		c := k.clone()
		c.chordType = target
		return c, nil
	}
	if ref == nil {
		return nil, errors.NewConversion(string(k.chordType), string(target))
	}
	tonic := ref
	if tonic.chordType.isDegreeBased() {
		return nil, errors.NewConversion(string(k.chordType), string(target))
	}

	pitch := mod12(tonic.EffectiveGrade() + k.relativeGrade())
	index := (tonic.index + k.index) % 7

	c := k.clone()
	c.chordType = target
	c.hasReference, c.referenceGrade = false, 0
	if m, ok := spellAs(pitch, index); ok {
		c.index, c.modifier = index, m
		return c.Normalize(), nil
	}
	c.index, c.modifier = spellPitch(pitch, tonic.accidentalPreference())
	return c, nil
}

// ToNumeric converts the key to a numeric degree relative to ref. Numeral
// keys convert without a reference.
func (k *Key) ToNumeric(ref *Key) (*Key, error) {
	return k.toDegrees(Numeric, ref)
}

// ToNumeral converts the key to a roman numeral degree relative to ref.
// Numeric keys convert without a reference.
func (k *Key) ToNumeral(ref *Key) (*Key, error) {
	return k.toDegrees(Numeral, ref)
}

func (k *Key) toDegrees(target ChordType, ref *Key) (*Key, error) {
	if k.chordType.isDegreeBased() {
		c := k.clone()
		c.chordType = target
		return c, nil
	}
	if ref == nil || ref.chordType.isDegreeBased() {
		return nil, errors.NewConversion(string(k.chordType), string(target))
	}

	tonic := ref.EffectiveGrade()
	degree := chromaticDegree[mod12(k.EffectiveGrade()-tonic)]

	c := k.clone()
	c.chordType = target
	c.index, c.modifier = degree.index, degree.modifier
	c.referenceGrade, c.hasReference = tonic, true
	return c, nil
}

// Note returns the key name without the minor sign.
func (k *Key) Note() string {
	return k.render(false, false)
}

// MinorSign returns "m" for minor letter and numeric keys.
func (k *Key) MinorSign() string {
	if k.minor && k.chordType != Numeral {
		return "m"
	}
	return ""
}

// String renders the key including the minor sign, e.g. "Am", "Lam", "6m", "vi".
func (k *Key) String() string {
	return k.render(true, false)
}

// Format renders the key with explicit options.
func (k *Key) Format(showMinor, useUnicodeModifier bool) string {
	return k.render(showMinor, useUnicodeModifier)
}

func (k *Key) render(showMinor, unicode bool) string {
	mod := k.modifier.text(unicode)
	minor := ""
	if showMinor {
		minor = k.MinorSign()
	}

	switch k.chordType {
	case Solfege:
		return solfegeNames[k.index] + mod + minor
	case Numeric:
		return mod + strconv.Itoa(k.index+1) + minor
	case Numeral:
		numeral := numeralNames[k.index]
		if k.minor {
			numeral = strings.ToLower(numeral)
		}
		return mod + numeral
	default:
		return symbolNames[k.index] + mod + minor
	}
}
