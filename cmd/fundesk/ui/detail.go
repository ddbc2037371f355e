package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// KeyValue is one labeled line of a detail card.
type KeyValue struct {
	Key   string
	Value string
}

// Detail renders a single resource: labeled fields plus an optional
// markdown description, the way fund and product pages show their CMS
// content.
type Detail struct {
	Title    string
	Fields   []KeyValue
	Markdown string

	styles Styles
	width  int
}

// NewDetail creates a detail card.
func NewDetail(title string, fields []KeyValue, markdown string) Detail {
	return Detail{
		Title:    title,
		Fields:   fields,
		Markdown: markdown,
		styles:   DefaultStyles(),
		width:    80,
	}
}

// SetWidth adjusts the render width.
func (d *Detail) SetWidth(w int) {
	if w > 0 {
		d.width = w
	}
}

// View renders the card.
func (d Detail) View() string {
	var sections []string

	sections = append(sections, d.styles.Title.Render(d.Title))

	keyWidth := 0
	for _, f := range d.Fields {
		if w := lipgloss.Width(f.Key); w > keyWidth {
			keyWidth = w
		}
	}
	for _, f := range d.Fields {
		key := d.styles.Muted.Width(keyWidth + 2).Render(f.Key)
		sections = append(sections, fmt.Sprintf("%s%s", key, d.styles.Body.Render(f.Value)))
	}

	if md := strings.TrimSpace(d.Markdown); md != "" {
		sections = append(sections, d.styles.RenderDivider(d.width))
		sections = append(sections, renderMarkdown(md, d.width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMarkdown renders server-provided markdown. On renderer failure
// the raw text is shown rather than nothing.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
