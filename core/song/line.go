package song

// LineType is the section a line belongs to.
type LineType string

// Line and paragraph types. Indeterminate only applies to paragraphs whose
// lines have different types.
const (
	Verse         LineType = "verse"
	Chorus        LineType = "chorus"
	Bridge        LineType = "bridge"
	Tab           LineType = "tab"
	Grid          LineType = "grid"
	None          LineType = "none"
	Indeterminate LineType = "indeterminate"
)

// Line is a line of a chord sheet.
type Line struct {
	Items []Item
	Type  LineType

	// Key is the song key in effect for this line, from {key} or {new_key}.
	Key string
	// TransposeKey is the value of the last {transpose} directive before
	// this line: a semitone count or a key.
	TransposeKey string

	TextFont  Font
	ChordFont Font

	// Number is the 1-based source line number, or 0 when unknown.
	Number int
}

// NewLine creates a line of the given type.
func NewLine(lineType LineType, items ...Item) *Line {
	if lineType == "" {
		lineType = None
	}
	return &Line{Type: lineType, Items: items}
}

// IsEmpty reports whether the line has no items.
func (l *Line) IsEmpty() bool { return len(l.Items) == 0 }

// HasRenderableItems reports whether any item renders in formatted output.
func (l *Line) HasRenderableItems() bool {
	for _, item := range l.Items {
		if item.IsRenderable() {
			return true
		}
	}
	return false
}

// AddItem appends an item.
func (l *Line) AddItem(item Item) {
	l.Items = append(l.Items, item)
}

// IsVerse reports whether the line is part of a verse.
func (l *Line) IsVerse() bool { return l.Type == Verse }

// IsChorus reports whether the line is part of a chorus.
func (l *Line) IsChorus() bool { return l.Type == Chorus }

// IsBridge reports whether the line is part of a bridge.
func (l *Line) IsBridge() bool { return l.Type == Bridge }

// IsTab reports whether the line is part of a tab section.
func (l *Line) IsTab() bool { return l.Type == Tab }

// IsGrid reports whether the line is part of a grid section.
func (l *Line) IsGrid() bool { return l.Type == Grid }

// Tags returns the directives on the line.
func (l *Line) Tags() []*Tag {
	var tags []*Tag
	for _, item := range l.Items {
		if t, ok := item.(*Tag); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasTag reports whether the line holds a directive with the given name.
func (l *Line) HasTag(name string) bool {
	for _, t := range l.Tags() {
		if t.Name() == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the line and its items.
func (l *Line) Clone() *Line {
	c := *l
	c.Items = make([]Item, len(l.Items))
	for i, item := range l.Items {
		c.Items[i] = item.Clone()
	}
	c.TextFont = l.TextFont.Clone()
	c.ChordFont = l.ChordFont.Clone()
	return &c
}

// MapItems returns a copy of the line with each item replaced by fn's
// result. Returning nil removes the item. fn receives a copy of each item.
func (l *Line) MapItems(fn func(Item) Item) *Line {
	c := l.Clone()
	items := c.Items[:0]
	for _, item := range c.Items {
		if mapped := fn(item); mapped != nil {
			items = append(items, mapped)
		}
	}
	c.Items = items
	return c
}
