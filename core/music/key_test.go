package music

import (
	"errors"
	"testing"

	chorderrors "github.com/FocuswithJustin/ChordSheet/core/errors"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		input     string
		wantType  ChordType
		wantMinor bool
		wantMod   Modifier
		wantStr   string
	}{
		{"C", Symbol, false, NoModifier, "C"},
		{"  F#m \n", Symbol, true, Sharp, "F#m"},
		{"Bb", Symbol, false, Flat, "Bb"},
		{"A♭", Symbol, false, Flat, "Ab"},
		{"Do", Solfege, false, NoModifier, "Do"},
		{"Sib", Solfege, false, Flat, "Sib"},
		{"Lam", Solfege, true, NoModifier, "Lam"},
		{"b3", Numeric, false, Flat, "b3"},
		{"6m", Numeric, true, NoModifier, "6m"},
		{"#IV", Numeral, false, Sharp, "#IV"},
		{"vi", Numeral, true, NoModifier, "vi"},
		{"bVII", Numeral, false, Flat, "bVII"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k := ParseKey(tt.input)
			if k == nil {
				t.Fatalf("ParseKey(%q) = nil", tt.input)
			}
			if k.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", k.Type(), tt.wantType)
			}
			if k.IsMinor() != tt.wantMinor {
				t.Errorf("IsMinor() = %v, want %v", k.IsMinor(), tt.wantMinor)
			}
			if k.Modifier() != tt.wantMod {
				t.Errorf("Modifier() = %q, want %q", k.Modifier(), tt.wantMod)
			}
			if got := k.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "H", "Am7", "8", "IIII", "Chorus"} {
		if k := ParseKey(input); k != nil {
			t.Errorf("ParseKey(%q) = %q, want nil", input, k.String())
		}
	}

	_, err := ParseKeyOrFail("H")
	if !errors.Is(err, chorderrors.ErrParse) {
		t.Errorf("ParseKeyOrFail(H) error = %v, want ErrParse", err)
	}
}

func TestKeyGradeAndNumber(t *testing.T) {
	k := ParseKey("Eb")
	if g, ok := k.Grade(); !ok || g != 4 {
		t.Errorf("Grade() = %d, %v, want 4, true", g, ok)
	}
	if _, ok := k.Number(); ok {
		t.Error("Number() should be unset for symbol keys")
	}
	if k.EffectiveGrade() != 3 {
		t.Errorf("EffectiveGrade() = %d, want 3", k.EffectiveGrade())
	}
	if k.OriginalKeyString() != "Eb" {
		t.Errorf("OriginalKeyString() = %q, want %q", k.OriginalKeyString(), "Eb")
	}

	n := ParseKey("#4")
	if num, ok := n.Number(); !ok || num != 4 {
		t.Errorf("Number() = %d, %v, want 4, true", num, ok)
	}
	if _, ok := n.Grade(); ok {
		t.Error("Grade() should be unset for numeric keys")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"C", "D", 2},
		{"D", "C", 10},
		{"C", "C", 0},
		{"Do", "Re", 2},
		{"C", "Re", 2},
		{"Bb", "A#", 0},
		{"1", "5", 7},
		{"I", "IV", 5},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := Distance(ParseKey(tt.from), ParseKey(tt.to)); got != tt.want {
				t.Errorf("Distance(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDistanceAntisymmetry(t *testing.T) {
	keys := []string{"C", "C#", "Db", "E", "F", "Sol", "Lab", "B", "1", "b3", "V"}
	for _, a := range keys {
		for _, b := range keys {
			ka, kb := ParseKey(a), ParseKey(b)
			sum := Distance(ka, kb) + Distance(kb, ka)
			if sum%12 != 0 {
				t.Errorf("Distance(%s,%s)+Distance(%s,%s) = %d, want multiple of 12", a, b, b, a, sum)
			}
		}
	}
}

func TestTransposeDistanceProperty(t *testing.T) {
	keys := []string{"C", "F#", "Bb", "Am", "Do", "Sib", "Lam", "1", "b7", "IV", "vi"}
	for _, s := range keys {
		k := ParseKey(s)
		for d := -25; d <= 25; d++ {
			want := ((d % 12) + 12) % 12
			transposed := k.Transpose(d)
			if got := Distance(k, transposed); got != want {
				t.Errorf("Distance(%s, %s.Transpose(%d)) = %d, want %d", s, s, d, got, want)
			}
			if transposed.Type() != k.Type() {
				t.Errorf("%s.Transpose(%d) changed type to %s", s, d, transposed.Type())
			}
			if transposed.IsMinor() != k.IsMinor() {
				t.Errorf("%s.Transpose(%d) changed minor-ness", s, d)
			}
		}
	}
}

func TestSignedDistance(t *testing.T) {
	if got := SignedDistance(ParseKey("C"), ParseKey("D")); got != 2 {
		t.Errorf("SignedDistance(C, D) = %d, want 2", got)
	}
	if got := SignedDistance(ParseKey("C"), ParseKey("A")); got != -3 {
		t.Errorf("SignedDistance(C, A) = %d, want -3", got)
	}
	if got := SignedDistance(ParseKey("C"), ParseKey("F#")); got != 6 {
		t.Errorf("SignedDistance(C, F#) = %d, want 6", got)
	}
}

func TestKeyTranspose(t *testing.T) {
	tests := []struct {
		key   string
		delta int
		want  string
	}{
		{"C", 2, "D"},
		{"C", 1, "C#"},
		{"C", -1, "B"},
		{"D", -1, "Db"},
		{"E", -1, "Eb"},
		{"Bb", 1, "B"},
		{"Eb", 2, "F"},
		{"C#", 2, "D#"},
		{"Am", 2, "Bm"},
		{"Do", 2, "Re"},
		{"La", 1, "La#"},
		{"3", 1, "4"},
		{"3", 2, "#4"},
		{"vi", 2, "vii"},
		{"C", 14, "D"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ParseKey(tt.key).Transpose(tt.delta).String(); got != tt.want {
				t.Errorf("%s.Transpose(%d) = %q, want %q", tt.key, tt.delta, got, tt.want)
			}
		})
	}
}

func TestKeyNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Fb", "E"},
		{"Cb", "B"},
		{"B#", "C"},
		{"E#", "F"},
		{"Fab", "Mi"},
		{"Dob", "Si"},
		{"Si#", "Do"},
		{"Mi#", "Fa"},
		{"b4", "3"},
		{"b1", "7"},
		{"#7", "1"},
		{"#3", "4"},
		{"F#", "F#"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseKey(tt.in).Normalize().String(); got != tt.want {
				t.Errorf("Normalize(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyUseModifier(t *testing.T) {
	if got := ParseKey("A#").UseModifier(Flat).String(); got != "Bb" {
		t.Errorf("A#.UseModifier(b) = %q, want %q", got, "Bb")
	}
	if got := ParseKey("Gb").UseModifier(Sharp).String(); got != "F#" {
		t.Errorf("Gb.UseModifier(#) = %q, want %q", got, "F#")
	}
	if got := ParseKey("C").UseModifier(Flat).String(); got != "C" {
		t.Errorf("C.UseModifier(b) = %q, want %q", got, "C")
	}

	// The preferred modifier then drives normalization.
	k := ParseKey("C").UseModifier(Flat).Transpose(1)
	if got := k.String(); got != "Db" {
		t.Errorf("C(b).Transpose(1) = %q, want %q", got, "Db")
	}
}

func TestRelativeKeys(t *testing.T) {
	tests := []struct {
		key   string
		major string
		minor string
	}{
		{"Am", "C", "Am"},
		{"Em", "G", "Em"},
		{"C", "C", "Am"},
		{"Eb", "Eb", "Cm"},
		{"F#m", "A", "F#m"},
		{"Lam", "Do", "Lam"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			k := ParseKey(tt.key)
			if got := k.RelativeMajor().String(); got != tt.major {
				t.Errorf("RelativeMajor(%s) = %q, want %q", tt.key, got, tt.major)
			}
			if got := k.RelativeMinor().String(); got != tt.minor {
				t.Errorf("RelativeMinor(%s) = %q, want %q", tt.key, got, tt.minor)
			}
		})
	}
}

func TestKeyConversions(t *testing.T) {
	e := ParseKey("E")

	num, err := ParseKey("A#").ToNumeric(e)
	if err != nil {
		t.Fatalf("ToNumeric failed: %v", err)
	}
	if num.String() != "#4" {
		t.Errorf("A# in E = %q, want %q", num.String(), "#4")
	}
	if g, ok := num.ReferenceKeyGrade(); !ok || g != 4 {
		t.Errorf("ReferenceKeyGrade() = %d, %v, want 4, true", g, ok)
	}

	numeral, err := ParseKey("A#").ToNumeral(e)
	if err != nil {
		t.Fatalf("ToNumeral failed: %v", err)
	}
	if numeral.String() != "#IV" {
		t.Errorf("A# in E = %q, want %q", numeral.String(), "#IV")
	}

	sym, err := ParseKey("#4").ToChordSymbol(e)
	if err != nil {
		t.Fatalf("ToChordSymbol failed: %v", err)
	}
	if sym.String() != "A#" {
		t.Errorf("#4 in E = %q, want %q", sym.String(), "A#")
	}

	sol, err := ParseKey("#4").ToChordSolfege(ParseKey("Mi"))
	if err != nil {
		t.Fatalf("ToChordSolfege failed: %v", err)
	}
	if sol.String() != "La#" {
		t.Errorf("#4 in Mi = %q, want %q", sol.String(), "La#")
	}

	// Letter notations convert without a reference key.
	sol, err = ParseKey("Bbm").ToChordSolfege(nil)
	if err != nil {
		t.Fatalf("ToChordSolfege without reference failed: %v", err)
	}
	if sol.String() != "Sibm" {
		t.Errorf("Bbm as solfege = %q, want %q", sol.String(), "Sibm")
	}

	// Numeric and numeral convert into one another without a reference key.
	n, err := ParseKey("b7").ToNumeral(nil)
	if err != nil {
		t.Fatalf("ToNumeral without reference failed: %v", err)
	}
	if n.String() != "bVII" {
		t.Errorf("b7 as numeral = %q, want %q", n.String(), "bVII")
	}
}

func TestKeyConversionRequiresReference(t *testing.T) {
	_, err := ParseKey("C").ToNumeric(nil)
	if !errors.Is(err, chorderrors.ErrInvalidConversion) {
		t.Errorf("ToNumeric(nil) error = %v, want ErrInvalidConversion", err)
	}
	_, err = ParseKey("IV").ToChordSymbol(nil)
	if !errors.Is(err, chorderrors.ErrInvalidConversion) {
		t.Errorf("ToChordSymbol(nil) error = %v, want ErrInvalidConversion", err)
	}
}

func TestKeyFormat(t *testing.T) {
	k := ParseKey("F#m")
	if got := k.Format(false, true); got != "F♯" {
		t.Errorf("Format(false, true) = %q, want %q", got, "F♯")
	}
	if got := k.Note(); got != "F#" {
		t.Errorf("Note() = %q, want %q", got, "F#")
	}
	if got := k.MinorSign(); got != "m" {
		t.Errorf("MinorSign() = %q, want %q", got, "m")
	}
}

func TestKeyIsImmutable(t *testing.T) {
	k := ParseKey("C")
	_ = k.Transpose(5)
	_ = k.MakeMinor()
	_ = k.UseModifier(Flat)
	if k.String() != "C" {
		t.Errorf("original key changed to %q", k.String())
	}
}

func TestWrapKey(t *testing.T) {
	k := ParseKey("F#m")
	if got := WrapKey(k); got != k {
		t.Errorf("WrapKey(*Key) = %v, want the same key", got)
	}
	if got := WrapKey("F#m"); got == nil || !got.Equals(k) {
		t.Errorf("WrapKey(%q) = %v, want %v", "F#m", got, k)
	}
	if got := WrapKey("not a key"); got != nil {
		t.Errorf("WrapKey(%q) = %v, want nil", "not a key", got)
	}
}
