package formatter

import (
	"testing"

	"github.com/FocuswithJustin/ChordSheet/core/song"
)

const verseSheet = `{title: Let it be}
{subtitle: ChordSheet}
{key: C}

{start_of_verse: Verse 1}
Let it [Am]be, let it [C/G]be
{end_of_verse}

{comment: Breakdown}
[F]Whisper`

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cfg   song.Configuration
		want  string
	}{
		{
			name:  "verse",
			input: verseSheet,
			cfg:   song.DefaultConfiguration(),
			want: "LET IT BE\nChordSheet\n\n" +
				"Verse 1\n" +
				"       Am         C/G\n" +
				"Let it be, let it be\n\n" +
				"Breakdown\n" +
				"F\n" +
				"Whisper",
		},
		{
			name:  "render key",
			input: verseSheet,
			cfg:   song.NewConfiguration(song.WithKey("D")),
			want: "LET IT BE\nChordSheet\n\n" +
				"Verse 1\n" +
				"       Bm         D/A\n" +
				"Let it be, let it be\n\n" +
				"Breakdown\n" +
				"G\n" +
				"Whisper",
		},
		{
			name:  "chords only",
			input: "[F][G]\n[C]",
			cfg:   song.DefaultConfiguration(),
			want:  "F G\nC",
		},
		{
			name:  "expressions are evaluated",
			input: "{title: Song}\n%{title|Title: %{}}",
			cfg:   song.DefaultConfiguration(),
			want:  "SONG\n\nTitle: Song",
		},
		{
			name:  "chorus not expanded",
			input: "{soc}\n[C]Chorus line\n{eoc}\n\n{chorus}",
			cfg:   song.DefaultConfiguration(),
			want:  "C\nChorus line",
		},
		{
			name:  "chorus expanded",
			input: "{soc}\n[C]Chorus line\n{eoc}\n\n{chorus}",
			cfg:   song.NewConfiguration(song.WithExpandChorusDirective(true)),
			want:  "C\nChorus line\n\nC\nChorus line",
		},
		{
			name:  "comments are hidden",
			input: "#private\nLyrics",
			cfg:   song.DefaultConfiguration(),
			want:  "Lyrics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&TextFormatter{Config: tt.cfg}).Format(parse(t, tt.input))
			if got != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"C", 3, "C  "},
		{"F♯", 3, "F♯ "},
		{"long", 2, "long"},
	}
	for _, tt := range tests {
		if got := padRight(tt.in, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
