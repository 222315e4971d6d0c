package music

// ChordType is the notation system of a key or chord.
type ChordType string

// Notation types.
const (
	Symbol  ChordType = "symbol"
	Solfege ChordType = "solfege"
	Numeric ChordType = "numeric"
	Numeral ChordType = "numeral"
)

// validChordTypes is the set of valid notation types.
var validChordTypes = map[ChordType]bool{
	Symbol:  true,
	Solfege: true,
	Numeric: true,
	Numeral: true,
}

// IsValid returns true if the notation type is known.
func (t ChordType) IsValid() bool {
	return validChordTypes[t]
}

// isDegreeBased reports whether the notation describes scale degrees
// relative to a tonal center rather than absolute notes.
func (t ChordType) isDegreeBased() bool {
	return t == Numeric || t == Numeral
}

// Modifier is an accidental.
type Modifier string

// Accidentals. NoModifier is the zero value.
const (
	NoModifier Modifier = ""
	Sharp      Modifier = "#"
	Flat       Modifier = "b"
)

const (
	unicodeSharp = "♯"
	unicodeFlat  = "♭"
)

// offset returns the semitone shift of the modifier.
func (m Modifier) offset() int {
	switch m {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

// Unicode returns the typographic form of the modifier.
func (m Modifier) Unicode() string {
	switch m {
	case Sharp:
		return unicodeSharp
	case Flat:
		return unicodeFlat
	default:
		return ""
	}
}

// opposite returns the other accidental; NoModifier stays NoModifier.
func (m Modifier) opposite() Modifier {
	switch m {
	case Sharp:
		return Flat
	case Flat:
		return Sharp
	default:
		return NoModifier
	}
}

// ParseModifier converts "#", "b", "♯" or "♭" to a Modifier.
func ParseModifier(s string) Modifier {
	switch s {
	case "#", unicodeSharp:
		return Sharp
	case "b", unicodeFlat:
		return Flat
	default:
		return NoModifier
	}
}

// naturalSemitones holds the semitone offset of each diatonic index, which
// is both the natural letters C..B and the degrees 1..7 of a major scale.
var naturalSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

var (
	symbolNames  = [7]string{"C", "D", "E", "F", "G", "A", "B"}
	solfegeNames = [7]string{"Do", "Re", "Mi", "Fa", "Sol", "La", "Si"}
	numeralNames = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}
)

// chromaticDegree is the conventional spelling of each semitone above a
// tonic: 1 b2 2 b3 3 4 #4 5 b6 6 b7 7.
var chromaticDegree = [12]struct {
	index    int
	modifier Modifier
}{
	{0, NoModifier},
	{1, Flat},
	{1, NoModifier},
	{2, Flat},
	{2, NoModifier},
	{3, NoModifier},
	{3, Sharp},
	{4, NoModifier},
	{5, Flat},
	{5, NoModifier},
	{6, Flat},
	{6, NoModifier},
}

// flatMajorKeys are the semitones of major keys written with flats:
// F, Bb, Eb, Ab, Db, Gb.
var flatMajorKeys = map[int]bool{5: true, 10: true, 3: true, 8: true, 1: true, 6: true}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}

// naturalIndex returns the diatonic index whose natural semitone equals
// pitch, or -1.
func naturalIndex(pitch int) int {
	pitch = mod12(pitch)
	for i, s := range naturalSemitones {
		if s == pitch {
			return i
		}
	}
	return -1
}

// spellAs returns the modifier that makes index sound as pitch, if a single
// accidental suffices.
func spellAs(pitch, index int) (Modifier, bool) {
	diff := mod12(pitch - naturalSemitones[index])
	switch diff {
	case 0:
		return NoModifier, true
	case 1:
		return Sharp, true
	case 11:
		return Flat, true
	default:
		return NoModifier, false
	}
}

// spellPitch spells pitch with the given accidental preference. Natural
// notes are always spelled without a modifier.
func spellPitch(pitch int, prefer Modifier) (int, Modifier) {
	if idx := naturalIndex(pitch); idx >= 0 {
		return idx, NoModifier
	}
	if prefer == Flat {
		return naturalIndex(pitch + 1), Flat
	}
	return naturalIndex(pitch - 1), Sharp
}

// text renders the modifier, optionally in typographic form.
func (m Modifier) text(unicode bool) string {
	if unicode {
		return m.Unicode()
	}
	return string(m)
}
