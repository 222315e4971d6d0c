package song

import "fmt"

// Warning is a non-fatal problem found while building a song, such as an
// unmatched section directive.
type Warning struct {
	Message string
	Line    int
	Column  int
}

func (w Warning) String() string {
	if w.Line == 0 {
		return w.Message
	}
	return fmt.Sprintf("%s on line %d column %d", w.Message, w.Line, w.Column)
}
