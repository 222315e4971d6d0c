// Package music implements the key and chord model used by chord sheets.
//
// Keys and chords exist in four notations:
//
//   - Symbol: letter names (C, F#, Bb)
//   - Solfege: fixed do names (Do, Fa#, Sib)
//   - Numeric: scale degrees relative to a tonal center (1, #4, b7)
//   - Numeral: roman numeral degrees (I, #IV, bVII, vi)
//
// Every key is stored as a diatonic index (letter or degree) plus an optional
// sharp or flat. Letter-based keys map the index to the natural semitones of
// C major; degree-based keys map it to the semitones of the major scale, which
// are the same numbers. That shared table is what lets the engine compute
// distances and conversions without caring about notation.
//
// Keys and chords are immutable: every transformation returns a new value.
//
// # Example
//
//	chord := music.ParseChord("Am7/G")
//	up := chord.Transpose(2)             // Bm7/A
//	num, err := chord.ToNumeric(music.ParseKey("C")) // 6m7/5
package music
