// Package render converts result content from Markdown to terminal text.
package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Bullet prefixes list items in rendered output.
const Bullet = "• "

var md = goldmark.New()

// ToText parses source as Markdown and returns its text with block structure
// preserved: paragraphs separated by blank lines, list items bulleted and
// code blocks indented. Inline markup is dropped.
func ToText(source string) string {
	if strings.TrimSpace(source) == "" {
		return source
	}
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	w := &textWriter{source: src}
	_ = ast.Walk(doc, w.visit)
	return strings.TrimRight(w.sb.String(), "\n")
}

type textWriter struct {
	source []byte
	sb     strings.Builder
	depth  int
}

func (w *textWriter) blockBreak() {
	s := w.sb.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		w.sb.WriteString("\n")
		return
	}
	w.sb.WriteString("\n\n")
}

func (w *textWriter) lineBreak() {
	s := w.sb.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		w.sb.WriteString("\n")
	}
}

func (w *textWriter) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.ThematicBreak:
		if entering {
			if _, inItem := n.Parent().(*ast.ListItem); !inItem {
				w.blockBreak()
			}
			if _, ok := n.(*ast.ThematicBreak); ok {
				w.sb.WriteString("────")
			}
		}
	case *ast.TextBlock:
		// tight list items
	case *ast.List:
		if entering {
			if w.depth == 0 {
				w.blockBreak()
			}
			w.depth++
		} else {
			w.depth--
		}
	case *ast.ListItem:
		if entering {
			w.lineBreak()
			w.sb.WriteString(strings.Repeat("  ", max(w.depth-1, 0)))
			w.sb.WriteString(Bullet)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.blockBreak()
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				w.sb.WriteString("    ")
				w.sb.WriteString(strings.TrimRight(string(seg.Value(w.source)), "\n"))
				w.sb.WriteString("\n")
			}
			return ast.WalkSkipChildren, nil
		}
	case *ast.Text:
		if entering {
			w.sb.Write(v.Segment.Value(w.source))
			if v.HardLineBreak() || v.SoftLineBreak() {
				w.sb.WriteString("\n")
			}
		}
	case *ast.String:
		if entering {
			w.sb.Write(v.Value)
		}
	case *ast.AutoLink:
		if entering {
			w.sb.Write(v.Label(w.source))
		}
	}
	return ast.WalkContinue, nil
}
