// spans.go — source positions and caret-annotated snippets.
//
// A Span is a half-open byte range [Start, End) into the Source it came
// from, plus the 1-based (Line, Col) of Start precomputed by the lexer so
// error rendering never has to re-scan the source from the beginning.
//
// Every token, AST node, and runtime error carries a Span. Rendering turns
// one into a short multi-line snippet with a caret under the offending
// column, in the shape the teacher's errors.go produces for lex/parse
// errors:
//
//	SyntaxError at 2:15 (main.saf): expected ')', got ";"
//
//	   1 | var y = 1;
//	   2 | var x = (1 + 2;
//	     |               ^
//	   3 | print(x);
package safulate

import (
	"fmt"
	"strings"
)

// Span is a byte range within a Source, plus its starting line/col.
type Span struct {
	Source *Source
	Start  int
	End    int
	Line   int
	Col    int
}

// Source is a single named unit of program text.
type Source struct {
	Name string
	Text string
}

// NewSource wraps raw program text with an origin label for diagnostics.
func NewSource(name, text string) *Source {
	return &Source{Name: name, Text: text}
}

func (s Span) snippet() string {
	if s.Source == nil {
		return ""
	}
	lines := strings.Split(s.Source.Text, "\n")
	if s.Line < 1 || s.Line > len(lines) {
		return ""
	}

	var b strings.Builder
	gutter := len(fmt.Sprintf("%d", s.Line+1))
	if gutter < 4 {
		gutter = 4
	}

	writeLine := func(n int) {
		fmt.Fprintf(&b, "%*d | %s\n", gutter, n, lines[n-1])
	}

	if s.Line > 1 {
		writeLine(s.Line - 1)
	}
	writeLine(s.Line)

	col := s.Col
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(&b, "%*s | %s^\n", gutter, "", strings.Repeat(" ", col-1))

	if s.Line < len(lines) {
		writeLine(s.Line + 1)
	}
	return b.String()
}

// Render produces a caret-annotated diagnostic for an error occurring at
// this span, with the given header (an error kind such as "SyntaxError").
func (s Span) Render(header, msg string) string {
	origin := ""
	if s.Source != nil && s.Source.Name != "" {
		origin = fmt.Sprintf(" (%s)", s.Source.Name)
	}
	snippet := s.snippet()
	if snippet == "" {
		return fmt.Sprintf("%s at %d:%d%s: %s", header, s.Line, s.Col, origin, msg)
	}
	return fmt.Sprintf("%s at %d:%d%s: %s\n\n%s", header, s.Line, s.Col, origin, msg, snippet)
}

// joinSpan returns a span covering both a and b; used when building compound
// AST nodes whose range should cover all of their children.
func joinSpan(a, b Span) Span {
	if a.Source == nil {
		return b
	}
	if b.Source == nil {
		return a
	}
	start, end := a.Start, b.End
	if b.Start < start {
		start = b.Start
	}
	if a.End > end {
		end = a.End
	}
	return Span{Source: a.Source, Start: start, End: end, Line: a.Line, Col: a.Col}
}
