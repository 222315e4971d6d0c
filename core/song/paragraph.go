package song

// Paragraph is a run of lines between empty lines.
type Paragraph struct {
	Lines []*Line
}

// AddLine appends a line.
func (p *Paragraph) AddLine(l *Line) {
	p.Lines = append(p.Lines, l)
}

// Type returns the type shared by all lines, Indeterminate when the lines
// differ, or None for an empty paragraph.
func (p *Paragraph) Type() LineType {
	if len(p.Lines) == 0 {
		return None
	}
	t := p.Lines[0].Type
	for _, l := range p.Lines[1:] {
		if l.Type != t {
			return Indeterminate
		}
	}
	return t
}

// IsLiteral reports whether the paragraph is a tab or grid section whose
// lines render verbatim.
func (p *Paragraph) IsLiteral() bool {
	t := p.Type()
	return t == Tab || t == Grid
}

// HasRenderableItems reports whether any line renders content.
func (p *Paragraph) HasRenderableItems() bool {
	for _, l := range p.Lines {
		if l.HasRenderableItems() {
			return true
		}
	}
	return false
}

// Label returns the label of the section opener in the paragraph, such as
// "Verse 1" for {start_of_verse: Verse 1}.
func (p *Paragraph) Label() string {
	for _, l := range p.Lines {
		for _, t := range l.Tags() {
			if t.HasRenderableLabel() {
				return t.Label()
			}
		}
	}
	return ""
}
