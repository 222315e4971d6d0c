package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chorderrors "github.com/FocuswithJustin/ChordSheet/core/errors"
	"github.com/FocuswithJustin/ChordSheet/core/parser"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

func parse(t *testing.T, input string) *song.Song {
	t.Helper()
	s, err := (&parser.ChordProParser{}).Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return s
}

func TestChordProFormatterRoundTrip(t *testing.T) {
	for _, name := range []string{"let_it_be.cho", "let_it_be_solfege.cho"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("..", "parser", "testdata", name))
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}
			want := strings.TrimSuffix(string(data), "\n")

			got := (&ChordProFormatter{Config: song.DefaultConfiguration()}).Format(parse(t, want))
			if got != want {
				t.Errorf("Format() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestChordProFormatterEvaluate(t *testing.T) {
	s := parse(t, "{title: Song}\n{artist: A}\n{artist: B}\nBy %{artist}")

	cfg := song.NewConfiguration(song.WithEvaluate(true), song.WithSeparator(" & "))
	got := (&ChordProFormatter{Config: cfg}).Format(s)
	want := "{title: Song}\n{artist: A}\n{artist: B}\nBy A & B"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestChangingKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		setKey  string
		newKey  string
		want    string
		wantKey string
	}{
		{
			name:    "symbol chords",
			input:   "{key: C}\nLet it [Am]be, let it [C/G]be, let it [F]be, let it [C]be",
			newKey:  "D",
			want:    "{key: D}\nLet it [Bm]be, let it [D/A]be, let it [G]be, let it [D]be",
			wantKey: "D",
		},
		{
			name:    "symbol chords with key set first",
			input:   "Let it [Am]be, let it [C/G]be, let it [F]be, let it [C]be",
			setKey:  "C",
			newKey:  "D",
			want:    "{key: D}\nLet it [Bm]be, let it [D/A]be, let it [G]be, let it [D]be",
			wantKey: "D",
		},
		{
			name:    "solfege chords",
			input:   "{key: Do}\nLet it [Lam]be, let it [Do/Sol]be, let it [Fa]be, let it [Do]be",
			newKey:  "Re",
			want:    "{key: Re}\nLet it [Sim]be, let it [Re/La]be, let it [Sol]be, let it [Re]be",
			wantKey: "Re",
		},
		{
			name:    "solfege chords with key set first",
			input:   "Let it [Lam]be, let it [Do/Sol]be, let it [Fa]be, let it [Do]be",
			setKey:  "Do",
			newKey:  "Re",
			want:    "{key: Re}\nLet it [Sim]be, let it [Re/La]be, let it [Sol]be, let it [Re]be",
			wantKey: "Re",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parse(t, tt.input)
			if tt.setKey != "" {
				s = s.SetKey(tt.setKey)
			}
			changed, err := s.ChangeKey(tt.newKey)
			if err != nil {
				t.Fatalf("ChangeKey() error = %v", err)
			}
			if changed.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", changed.Key(), tt.wantKey)
			}
			if got := (&ChordProFormatter{}).Format(changed); got != tt.want {
				t.Errorf("Format() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestChangingKeyWithoutKey(t *testing.T) {
	for _, input := range []string{
		"Let it [Bm]be, let it [D/A]be, let it [G]be, let it [D]be",
		"Let it [Sim]be, let it [Re/La]be, let it [Sol]be, let it [Re]be",
	} {
		_, err := parse(t, input).ChangeKey("B")
		if !errors.Is(err, chorderrors.ErrNoKeySet) {
			t.Fatalf("ChangeKey() error = %v, want ErrNoKeySet", err)
		}
		if !strings.Contains(err.Error(), "cannot change song key, the original key is unknown") {
			t.Errorf("error = %q", err.Error())
		}
	}
}

func TestNew(t *testing.T) {
	for _, k := range Kinds {
		if _, err := New(k, song.DefaultConfiguration()); err != nil {
			t.Errorf("New(%q) error = %v", k, err)
		}
	}
	if _, err := New("pdf", song.DefaultConfiguration()); !errors.Is(err, chorderrors.ErrUnsupported) {
		t.Errorf("New(pdf) error = %v, want ErrUnsupported", err)
	}
}

func TestRenderChord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cfg   song.Configuration
		want  string
	}{
		{"as written", "{key: C}\n[C/G]x", song.DefaultConfiguration(), "C/G"},
		{"render key", "{key: C}\n[Am]x", song.NewConfiguration(song.WithKey("D")), "Bm"},
		{"transpose semitones", "{key: C}\n{transpose: 2}\n[C]x", song.DefaultConfiguration(), "D"},
		{"transpose to key", "{key: C}\n{transpose: G}\n[C]x", song.DefaultConfiguration(), "G"},
		{"capo", "{key: C}\n{capo: 2}\n[D]x", song.DefaultConfiguration(), "C"},
		{"unicode", "{key: C}\n[F#]x", song.NewConfiguration(song.WithUnicodeModifiers(true)), "F♯"},
		{"not a chord", "[N.C.]x", song.DefaultConfiguration(), "N.C."},
		{"no key", "[Am]x", song.NewConfiguration(song.WithKey("D")), "Am"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parse(t, tt.input)
			line := s.Lines[len(s.Lines)-1]
			pair := line.Items[0].(*song.ChordLyricsPair)
			if got := renderChord(pair.Chords, line, s, tt.cfg); got != tt.want {
				t.Errorf("renderChord(%q) = %q, want %q", pair.Chords, got, tt.want)
			}
		})
	}
}
