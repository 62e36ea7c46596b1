package pipeline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Checklist parser names accepted by NewChecklistParser.
const (
	ChecklistPattern  = "pattern"
	ChecklistMarkdown = "markdown"
)

// checklistPattern always captures the flag and the item text.
var checklistPattern = regexp.MustCompile(`- \[([xX ])\]([^\n]+)`)

// ChecklistParser extracts acceptance criteria from a description.
type ChecklistParser interface {
	ParseChecklist(description string) []ChecklistItem
}

// NewChecklistParser returns the parser registered under name.
// The second result is false for unknown names.
func NewChecklistParser(name string) (ChecklistParser, bool) {
	switch name {
	case "", ChecklistPattern:
		return &PatternChecklist{}, true
	case ChecklistMarkdown:
		return NewMarkdownChecklist(), true
	default:
		return nil, false
	}
}

// PatternChecklist matches "- [ ] text" and "- [x] text" anywhere in a line.
type PatternChecklist struct{}

// ParseChecklist returns the items in description order.
func (p *PatternChecklist) ParseChecklist(description string) []ChecklistItem {
	var items []ChecklistItem
	for _, m := range checklistPattern.FindAllStringSubmatch(description, -1) {
		if item, ok := newChecklistItem(m[1] != " ", m[2]); ok {
			items = append(items, item)
		}
	}
	return items
}

// MarkdownChecklist reads GFM task list items with goldmark. Emphasis is
// dropped by taking only the text content of each item.
type MarkdownChecklist struct {
	md goldmark.Markdown
}

// NewMarkdownChecklist creates a MarkdownChecklist.
func NewMarkdownChecklist() *MarkdownChecklist {
	return &MarkdownChecklist{
		md: goldmark.New(goldmark.WithExtensions(extension.TaskList)),
	}
}

// ParseChecklist returns the task list items in document order.
func (m *MarkdownChecklist) ParseChecklist(description string) []ChecklistItem {
	src := []byte(description)
	doc := m.md.Parser().Parse(text.NewReader(src))

	var items []ChecklistItem
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		box, ok := n.(*extast.TaskCheckBox)
		if !ok {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		for sib := box.NextSibling(); sib != nil; sib = sib.NextSibling() {
			writeInlineText(&sb, sib, src)
		}
		if item, ok := newChecklistItem(box.IsChecked, sb.String()); ok {
			items = append(items, item)
		}
		return ast.WalkSkipChildren, nil
	})
	return items
}

// writeInlineText appends the plain text of n and its descendants.
func writeInlineText(sb *strings.Builder, n ast.Node, src []byte) {
	switch v := n.(type) {
	case *ast.Text:
		sb.Write(v.Segment.Value(src))
		if v.SoftLineBreak() || v.HardLineBreak() {
			sb.WriteByte(' ')
		}
		return
	case *ast.String:
		sb.Write(v.Value)
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeInlineText(sb, c, src)
	}
}

func newChecklistItem(done bool, raw string) (ChecklistItem, bool) {
	t := strings.TrimSpace(strings.ReplaceAll(raw, "*", ""))
	if t == "" {
		return ChecklistItem{}, false
	}
	return ChecklistItem{Done: done, Text: t}, true
}

// RenderChecklist formats items as LaTeX \item lines. Done items carry the
// \done label.
func RenderChecklist(items []ChecklistItem) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(`  \item`)
		if item.Done {
			sb.WriteString(`[\done] `)
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(item.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
