// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
})

// Description renders a markdown schema description as a single line
// of styled text for profile. Block structure is flattened: paragraphs,
// headings, and list items are joined by single spaces. With
// termenv.Ascii the result is the description's plain text.
func Description(source string, profile termenv.Profile) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	data := []byte(source)
	document := markdown().Parser().Parse(text.NewReader(data))

	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	walker := &descriptionWalker{source: data, renderer: renderer}
	if err := ast.Walk(document, walker.walk); err != nil {
		return strings.Join(strings.Fields(source), " ")
	}
	return strings.Join(strings.Fields(walker.output.String()), " ")
}

// descriptionWalker accumulates styled inline text. The counters are
// nesting depths, so nested emphasis unwinds correctly.
type descriptionWalker struct {
	source   []byte
	renderer *lipgloss.Renderer
	output   strings.Builder

	bold          int
	italic        int
	strikethrough int
}

func (w *descriptionWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	delta := 1
	if !entering {
		delta = -1
	}

	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading, *ast.ListItem:
		if !entering {
			w.output.WriteByte(' ')
		}

	case *ast.Text:
		if entering {
			w.write(string(node.Segment.Value(w.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.output.WriteByte(' ')
			}
		}

	case *ast.String:
		if entering {
			w.write(string(node.Value))
		}

	case *ast.Emphasis:
		if node.Level >= 2 {
			w.bold += delta
		} else {
			w.italic += delta
		}

	case *extast.Strikethrough:
		w.strikethrough += delta

	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(w.source))
				}
			}
			w.output.WriteString(w.renderer.NewStyle().Foreground(lipgloss.Color("6")).Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			lines := node.Lines()
			var code strings.Builder
			for index := 0; index < lines.Len(); index++ {
				segment := lines.At(index)
				code.Write(segment.Value(w.source))
			}
			w.output.WriteString(w.renderer.NewStyle().Foreground(lipgloss.Color("6")).Render(strings.Join(strings.Fields(code.String()), " ")))
			w.output.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if !entering && len(node.Destination) > 0 {
			w.output.WriteString(" " + w.muted().Render("("+string(node.Destination)+")"))
		}

	case *ast.AutoLink:
		if entering {
			w.output.WriteString(w.muted().Render(string(node.URL(w.source))))
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML, *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (w *descriptionWalker) muted() lipgloss.Style {
	return w.renderer.NewStyle().Foreground(lipgloss.Color("8"))
}

// write appends value in the current inline style.
func (w *descriptionWalker) write(value string) {
	if w.bold == 0 && w.italic == 0 && w.strikethrough == 0 {
		w.output.WriteString(value)
		return
	}
	style := w.renderer.NewStyle()
	if w.bold > 0 {
		style = style.Bold(true)
	}
	if w.italic > 0 {
		style = style.Italic(true)
	}
	if w.strikethrough > 0 {
		style = style.Strikethrough(true)
	}
	w.output.WriteString(style.Render(value))
}
