package formatter

import (
	"bytes"
	"html/template"
	"maps"
	"slices"
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// HTMLFormatter renders a song as HTML, aligning chords with lyrics in
// nested divs:
//
//	<div class="chord-sheet">
//	  <h1 class="title">Let it be</h1>
//	  <div class="paragraph verse">
//	    <div class="row">
//	      <div class="column"><div class="chord">Am</div><div class="lyrics">be</div></div>
//	    </div>
//	  </div>
//	</div>
type HTMLFormatter struct {
	Config song.Configuration
}

type htmlSheet struct {
	Title      string
	Subtitle   string
	Paragraphs []htmlParagraph
}

type htmlParagraph struct {
	Type song.LineType
	Rows []htmlRow
}

type htmlRow struct {
	Type    song.LineType
	Columns []htmlColumn
}

// htmlColumn is one item of a row. Label and Comment columns have no
// chord.
type htmlColumn struct {
	Label      string
	Comment    string
	Chord      string
	Lyrics     string
	ChordStyle template.CSS
	TextStyle  template.CSS
}

var htmlTemplate = template.Must(template.New("sheet").Funcs(template.FuncMap{
	"classes": classes,
}).Parse(`<div class="chord-sheet">
{{- with .Title}}<h1 class="title">{{.}}</h1>{{end}}
{{- with .Subtitle}}<h2 class="subtitle">{{.}}</h2>{{end}}
{{- range .Paragraphs}}
<div class="{{classes "paragraph" .Type}}">
{{- range .Rows}}<div class="{{classes "row" .Type}}">
{{- range .Columns}}
{{- if .Label}}<h3 class="label">{{.Label}}</h3>
{{- else if .Comment}}<div class="comment">{{.Comment}}</div>
{{- else}}<div class="column"><div class="chord"{{with .ChordStyle}} style="{{.}}"{{end}}>{{.Chord}}</div><div class="lyrics"{{with .TextStyle}} style="{{.}}"{{end}}>{{.Lyrics}}</div></div>
{{- end}}
{{- end}}</div>
{{- end}}</div>
{{- end}}
</div>`))

// classes joins a base class with a line or paragraph type.
func classes(base string, t song.LineType) string {
	if t == song.None || t == song.Indeterminate || t == "" {
		return base
	}
	return base + " " + string(t)
}

// Format renders s as HTML.
func (f *HTMLFormatter) Format(s *song.Song) string {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, f.sheet(s)); err != nil {
		return "<!-- " + template.HTMLEscapeString(err.Error()) + " -->"
	}
	return buf.String()
}

func (f *HTMLFormatter) sheet(s *song.Song) htmlSheet {
	sheet := htmlSheet{Title: s.Title(), Subtitle: s.Subtitle()}
	for _, p := range bodyParagraphs(s, f.Config) {
		hp := htmlParagraph{Type: p.Type()}
		for _, l := range p.Lines {
			if !l.HasRenderableItems() {
				continue
			}
			hp.Rows = append(hp.Rows, f.row(l, s))
		}
		sheet.Paragraphs = append(sheet.Paragraphs, hp)
	}
	return sheet
}

func (f *HTMLFormatter) row(l *song.Line, s *song.Song) htmlRow {
	row := htmlRow{Type: l.Type}
	chordStyle, textStyle := style(l.ChordFont), style(l.TextFont)
	for _, item := range l.Items {
		switch it := item.(type) {
		case *song.ChordLyricsPair:
			col := htmlColumn{Lyrics: it.Lyrics, ChordStyle: chordStyle, TextStyle: textStyle}
			if it.Chords != "" {
				col.Chord = renderChord(it.Chords, l, s, f.Config)
			}
			row.Columns = append(row.Columns, col)
		case *song.Tag:
			switch {
			case it.HasRenderableLabel():
				row.Columns = append(row.Columns, htmlColumn{Label: it.Label()})
			case it.IsRenderable():
				row.Columns = append(row.Columns, htmlColumn{Comment: it.Value})
			}
		case *song.Expression:
			row.Columns = append(row.Columns, htmlColumn{Lyrics: evaluate(it, s, f.Config), TextStyle: textStyle})
		}
	}
	return row
}

// style returns the inline CSS for a font. Characters that could end the
// attribute or the declaration block are dropped.
func style(font song.Font) template.CSS {
	css := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>{}"\`, r) {
			return -1
		}
		return r
	}, font.CSSString())
	return template.CSS(css)
}

var defaultCSS = map[string]map[string]string{
	".title":     {"font-size": "1.5em"},
	".subtitle":  {"font-size": "1.1em"},
	".row":       {"display": "flex"},
	".lyrics":    {"white-space": "pre"},
	".chord":     {"white-space": "pre", "font-weight": "bold"},
	".paragraph": {"margin-bottom": "1em"},
	".chord:after, .lyrics:after": {
		"content": `'\200b'`,
	},
}

// CSS returns stylesheet rules for the HTML output. With a scope such as
// ".chordSheetViewer", every selector is prefixed with it.
func (f *HTMLFormatter) CSS(scope string) string {
	var sb strings.Builder
	for _, selector := range slices.Sorted(maps.Keys(defaultCSS)) {
		props := defaultCSS[selector]
		if scope != "" {
			parts := strings.Split(selector, ", ")
			for i, p := range parts {
				parts[i] = scope + " " + p
			}
			selector = strings.Join(parts, ", ")
		}
		sb.WriteString(selector + " {\n")
		for _, name := range slices.Sorted(maps.Keys(props)) {
			sb.WriteString("  " + name + ": " + props[name] + ";\n")
		}
		sb.WriteString("}\n\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
