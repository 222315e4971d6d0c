package music

import (
	"errors"
	"testing"

	chorderrors "github.com/FocuswithJustin/ChordSheet/core/errors"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		input      string
		wantType   ChordType
		wantRoot   string
		wantSuffix string
		wantBass   string
		wantMinor  bool
	}{
		{"C", Symbol, "C", "", "", false},
		{"Am", Symbol, "Am", "m", "", true},
		{"Esus4/G#", Symbol, "E", "sus4", "G#", false},
		{"  \n  E/G# \r ", Symbol, "E", "", "G#", false},
		{"Bbmaj7", Symbol, "Bb", "maj7", "", false},
		{"C6/9", Symbol, "C", "6/9", "", false},
		{"Fadd9", Symbol, "F", "add9", "", false},
		{"Do", Solfege, "Do", "", "", false},
		{"Lam", Solfege, "Lam", "m", "", true},
		{"Do/Sol", Solfege, "Do", "", "Sol", false},
		{"Sib7", Solfege, "Sib", "7", "", false},
		{"1sus4/#3", Numeric, "1", "sus4", "#3", false},
		{"6m7", Numeric, "6m", "m7", "", true},
		{"#IV", Numeral, "#IV", "", "", false},
		{"vi7", Numeral, "vi", "7", "", true},
		{"V/vii", Numeral, "V", "", "vii", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := ParseChord(tt.input)
			if c == nil {
				t.Fatalf("ParseChord(%q) = nil", tt.input)
			}
			if c.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", c.Type(), tt.wantType)
			}
			if got := c.Root().String(); got != tt.wantRoot {
				t.Errorf("Root() = %q, want %q", got, tt.wantRoot)
			}
			if c.Suffix() != tt.wantSuffix {
				t.Errorf("Suffix() = %q, want %q", c.Suffix(), tt.wantSuffix)
			}
			gotBass := ""
			if c.Bass() != nil {
				gotBass = c.Bass().String()
			}
			if gotBass != tt.wantBass {
				t.Errorf("Bass() = %q, want %q", gotBass, tt.wantBass)
			}
			if c.IsMinor() != tt.wantMinor {
				t.Errorf("IsMinor() = %v, want %v", c.IsMinor(), tt.wantMinor)
			}
		})
	}
}

func TestParseChordRejectsNonChords(t *testing.T) {
	for _, input := range []string{"", "Chorus", "x2", "N.C.", "Hello", "Z7"} {
		if c := ParseChord(input); c != nil {
			t.Errorf("ParseChord(%q) = %q, want nil", input, c.String())
		}
	}

	_, err := ParseChordOrFail("Chorus")
	if !errors.Is(err, chorderrors.ErrParse) {
		t.Errorf("ParseChordOrFail error = %v, want ErrParse", err)
	}
}

func TestChordStringRoundTrip(t *testing.T) {
	inputs := []string{
		"C", "Am7", "Esus4/G#", "Bb/D", "F#m7b5", "C6/9",
		"Do", "Lam", "Re/Fa#", "Sib7",
		"1", "6m", "1sus4/#3", "b7",
		"I", "vi7", "#IV", "bVII/I",
	}
	for _, s := range inputs {
		c := ParseChord(s)
		if c == nil {
			t.Errorf("ParseChord(%q) = nil", s)
			continue
		}
		if got := c.String(); got != s {
			t.Errorf("ParseChord(%q).String() = %q", s, got)
		}
		if again := ParseChord(c.String()); !again.Equals(c) {
			t.Errorf("re-parsing %q produced a different chord", s)
		}
	}
}

func TestChordTranspose(t *testing.T) {
	tests := []struct {
		chord string
		delta int
		want  string
	}{
		{"Am", 2, "Bm"},
		{"C/G", 2, "D/A"},
		{"F", 2, "G"},
		{"Lam", 2, "Sim"},
		{"Do/Sol", 2, "Re/La"},
		{"Fa", 2, "Sol"},
		{"A", 1, "A#"},
		{"E", -1, "Eb"},
		{"Ebmaj7", 2, "Fmaj7"},
		{"1/3", 2, "2/#4"},
		{"IV", 2, "V"},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			if got := ParseChord(tt.chord).Transpose(tt.delta).String(); got != tt.want {
				t.Errorf("%s.Transpose(%d) = %q, want %q", tt.chord, tt.delta, got, tt.want)
			}
		})
	}

	if got := ParseChord("A").TransposeUp().String(); got != "A#" {
		t.Errorf("TransposeUp = %q, want A#", got)
	}
	if got := ParseChord("E").TransposeDown().String(); got != "Eb" {
		t.Errorf("TransposeDown = %q, want Eb", got)
	}
}

func TestChordNormalize(t *testing.T) {
	tests := []struct {
		chord           string
		key             string
		normalizeSuffix bool
		want            string
	}{
		{"Fb", "", false, "E"},
		{"B#", "", false, "C"},
		{"Fab", "", false, "Mi"},
		{"Em/A#", "", false, "Em/Bb"},
		{"E/A#", "", false, "E/A#"},
		{"A#", "F", false, "Bb"},
		{"Bb", "E", false, "A#"},
		{"Csus2", "", true, "C2"},
		{"Csus4", "", true, "Csus"},
		{"Csus4", "", false, "Csus4"},
		{"Amin7", "", true, "Am7"},
	}

	for _, tt := range tests {
		t.Run(tt.chord+"@"+tt.key, func(t *testing.T) {
			var key *Key
			if tt.key != "" {
				key = ParseKey(tt.key)
			}
			if got := ParseChord(tt.chord).Normalize(key, tt.normalizeSuffix).String(); got != tt.want {
				t.Errorf("Normalize(%s, %q) = %q, want %q", tt.chord, tt.key, got, tt.want)
			}
		})
	}
}

func TestChordConversions(t *testing.T) {
	c := ParseKey("C")

	num, err := ParseChord("Am7/G").ToNumeric(c)
	if err != nil {
		t.Fatalf("ToNumeric failed: %v", err)
	}
	if num.String() != "6m7/5" {
		t.Errorf("ToNumeric = %q, want %q", num.String(), "6m7/5")
	}

	numeral, err := ParseChord("Am7/G").ToNumeral(c)
	if err != nil {
		t.Fatalf("ToNumeral failed: %v", err)
	}
	if numeral.String() != "vi7/V" {
		t.Errorf("ToNumeral = %q, want %q", numeral.String(), "vi7/V")
	}

	back, err := numeral.ToChordSymbol(c)
	if err != nil {
		t.Fatalf("ToChordSymbol failed: %v", err)
	}
	if back.String() != "Am7/G" {
		t.Errorf("ToChordSymbol = %q, want %q", back.String(), "Am7/G")
	}

	sol, err := ParseChord("F#m").ToChordSolfege(nil)
	if err != nil {
		t.Fatalf("ToChordSolfege failed: %v", err)
	}
	if sol.String() != "Fa#m" {
		t.Errorf("ToChordSolfege = %q, want %q", sol.String(), "Fa#m")
	}

	sym, err := ParseChord("#4").ToChordSymbol(ParseKey("E"))
	if err != nil {
		t.Fatalf("ToChordSymbol failed: %v", err)
	}
	if sym.String() != "A#" {
		t.Errorf("#4 in E = %q, want %q", sym.String(), "A#")
	}

	if _, err := ParseChord("Am").ToNumeral(nil); !errors.Is(err, chorderrors.ErrInvalidConversion) {
		t.Errorf("ToNumeral(nil) error = %v, want ErrInvalidConversion", err)
	}
	if _, err := ParseChord("IV").ToChordSolfege(nil); !errors.Is(err, chorderrors.ErrInvalidConversion) {
		t.Errorf("ToChordSolfege(nil) error = %v, want ErrInvalidConversion", err)
	}
}

func TestChordFormatUnicode(t *testing.T) {
	if got := ParseChord("F#m/C#").Format(true); got != "F♯m/C♯" {
		t.Errorf("Format(true) = %q, want %q", got, "F♯m/C♯")
	}
	if got := ParseChord("Bb").Format(true); got != "B♭" {
		t.Errorf("Format(true) = %q, want %q", got, "B♭")
	}
}

func TestNewChord(t *testing.T) {
	c, err := NewChord(ParseKey("C"), "7", ParseKey("E"))
	if err != nil {
		t.Fatalf("NewChord failed: %v", err)
	}
	if c.String() != "C7/E" {
		t.Errorf("String() = %q, want %q", c.String(), "C7/E")
	}

	if _, err := NewChord(ParseKey("C"), "", ParseKey("Mi")); !errors.Is(err, chorderrors.ErrInvalidInput) {
		t.Errorf("mixed notation error = %v, want ErrInvalidInput", err)
	}
	if _, err := NewChord(nil, "", nil); err == nil {
		t.Error("NewChord(nil) should fail")
	}
}

func TestChordUseModifierAndMinor(t *testing.T) {
	if got := ParseChord("A#/D#").UseModifier(Flat).String(); got != "Bb/Eb" {
		t.Errorf("UseModifier = %q, want %q", got, "Bb/Eb")
	}
	if got := ParseChord("C7").MakeMinor().String(); got != "Cm7" {
		t.Errorf("MakeMinor = %q, want %q", got, "Cm7")
	}
	if got := ParseChord("IV").MakeMinor().String(); got != "iv" {
		t.Errorf("MakeMinor numeral = %q, want %q", got, "iv")
	}
}
