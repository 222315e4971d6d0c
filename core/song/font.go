package song

import (
	"regexp"
	"strconv"
	"strings"
)

// SizeUnit is the unit of a FontSize.
type SizeUnit string

// Font size units.
const (
	Pixels  SizeUnit = "px"
	Percent SizeUnit = "%"
)

// FontSize is a font size in pixels or as a percentage of the parent size.
type FontSize struct {
	Size float64
	Unit SizeUnit
}

var leadingNumber = regexp.MustCompile(`^\s*[-+]?(?:\d+\.?\d*|\.\d+)`)

// ParseFontSize parses "30", "30px" or "120%". A percentage is applied to
// parent when one is given. Text without a leading number yields a copy of
// parent, or 100%.
func ParseFontSize(text string, parent *FontSize) FontSize {
	num := leadingNumber.FindString(text)
	size, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if num == "" || err != nil {
		if parent != nil {
			return *parent
		}
		return FontSize{Size: 100, Unit: Percent}
	}
	if strings.HasSuffix(strings.TrimSpace(text), "%") {
		if parent != nil {
			return parent.Multiply(size)
		}
		return FontSize{Size: size, Unit: Percent}
	}
	return FontSize{Size: size, Unit: Pixels}
}

// Multiply scales the size by percentage.
func (f FontSize) Multiply(percentage float64) FontSize {
	return FontSize{Size: f.Size * percentage / 100, Unit: f.Unit}
}

// String renders the size, e.g. "30px" or "120%".
func (f FontSize) String() string {
	return strconv.FormatFloat(f.Size, 'f', -1, 64) + string(f.Unit)
}

// Font is the font, size and colour applying to text or chords.
type Font struct {
	Family string
	Size   *FontSize
	Colour string
}

// Clone returns a deep copy of the font.
func (f Font) Clone() Font {
	c := f
	if f.Size != nil {
		size := *f.Size
		c.Size = &size
	}
	return c
}

// IsZero reports whether no property is set.
func (f Font) IsZero() bool {
	return f.Family == "" && f.Size == nil && f.Colour == ""
}

// CSSString converts the font to CSS declarations. Family and size are
// combined into the font shorthand when both are set; double quotes in
// the family become single quotes.
//
//	Font{Family: "Verdana", Colour: "red"} => "color: red; font-family: Verdana"
//	Font{Family: "Verdana", Size: 30px}     => "font: 30px Verdana"
func (f Font) CSSString() string {
	var props []string
	if f.Colour != "" {
		props = append(props, "color: "+f.Colour)
	}
	family := strings.ReplaceAll(f.Family, `"`, `'`)
	switch {
	case family != "" && f.Size != nil:
		props = append(props, "font: "+f.Size.String()+" "+family)
	case family != "":
		props = append(props, "font-family: "+family)
	case f.Size != nil:
		props = append(props, "font-size: "+f.Size.String())
	}
	return strings.Join(props, "; ")
}

// FontStack tracks the text and chord fonts set by {textfont}, {chordsize}
// and similar directives. A directive with a value pushes; the same
// directive without a value pops back to the previous setting.
type FontStack struct {
	TextFont  Font
	ChordFont Font

	values map[string][]string
	sizes  map[string][]FontSize
}

// NewFontStack creates an empty font stack.
func NewFontStack() *FontStack {
	return &FontStack{
		values: make(map[string][]string),
		sizes:  make(map[string][]FontSize),
	}
}

var fontTagPattern = regexp.MustCompile(`^(text|chord)(font|size|colour)$`)

// ApplyTag updates the stack for inline font directives and ignores all
// other tags.
func (s *FontStack) ApplyTag(t *Tag) {
	m := fontTagPattern.FindStringSubmatch(t.Name())
	if m == nil {
		return
	}
	if s.values == nil {
		s.values = make(map[string][]string)
		s.sizes = make(map[string][]FontSize)
	}
	target := &s.TextFont
	if m[1] == "chord" {
		target = &s.ChordFont
	}
	name := t.Name()

	if m[2] == "size" {
		stack := s.sizes[name]
		if t.HasValue() {
			var parent *FontSize
			if len(stack) > 0 {
				parent = &stack[len(stack)-1]
			}
			size := ParseFontSize(t.Value, parent)
			s.sizes[name] = append(stack, size)
			target.Size = &size
			return
		}
		if len(stack) > 0 {
			stack = stack[:len(stack)-1]
			s.sizes[name] = stack
		}
		target.Size = nil
		if len(stack) > 0 {
			size := stack[len(stack)-1]
			target.Size = &size
		}
		return
	}

	stack := s.values[name]
	if t.HasValue() {
		stack = append(stack, t.Value)
	} else if len(stack) > 0 {
		stack = stack[:len(stack)-1]
	}
	s.values[name] = stack

	value := ""
	if len(stack) > 0 {
		value = stack[len(stack)-1]
	}
	if m[2] == "font" {
		target.Family = value
	} else {
		target.Colour = value
	}
}
