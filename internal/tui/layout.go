package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/promptrefiner/internal/render"
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	contentWidth int
	ideaHeight   int
	outputHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth: 76,
		ideaHeight:   4,
		outputHeight: 12,
	}
}

// chrome covers the header, labels, selection line, button, status bar and
// key legend.
const layoutChrome = 16

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.contentWidth = innerWidth
	l.ideaHeight = 4
	if height < 30 {
		l.ideaHeight = 3
	}
	usable := height - layoutChrome - l.ideaHeight
	if usable < minOutputHeight {
		usable = minOutputHeight
	}
	l.outputHeight = usable
}

func (m *model) wrapWidth(indent int) int {
	width := m.viewport.Width - indent - 4
	if width < 20 {
		width = 20
	}
	return width
}

// buildOutputContent draws the Core Intent and Specifications cards plus the
// collapsible raw JSON view.
func (m *model) buildOutputContent(view render.View) string {
	if !view.ShowResult {
		return ""
	}
	wrap := m.wrapWidth(2)
	cardWidth := m.viewport.Width - 2
	if cardWidth < minViewportWidth-2 {
		cardWidth = minViewportWidth - 2
	}

	intent := []string{sectionHeaderStyle.Render("Core Intent")}
	for _, field := range view.CoreIntent {
		line := fieldLabelStyle.Render(field.Label+":") + " " + field.Value
		intent = append(intent, wordwrap.String(line, wrap))
	}

	specs := []string{
		sectionHeaderStyle.Render("Specifications"),
		fieldLabelStyle.Render("Functional Requirements:"),
	}
	if len(view.Requirements) == 0 {
		specs = append(specs, helperStyle.Render("  (none)"))
	}
	for idx, requirement := range view.Requirements {
		item := wordwrap.String(requirement, wrap-6)
		specs = append(specs, fmt.Sprintf("%3d. %s", idx+1, indentContinuation(item, "     ")))
	}

	parts := []string{
		sectionHeaderStyle.Render(outputTitle),
		cardStyle.Width(cardWidth).Render(strings.Join(intent, "\n")),
		cardStyle.Width(cardWidth).Render(strings.Join(specs, "\n")),
	}
	if m.rawVisible {
		parts = append(parts, helperStyle.Render("▾ "+rawJSONLabel+" (ctrl+r to hide)"))
		parts = append(parts, rawJSONStyle.Render(view.RawJSON))
	} else {
		parts = append(parts, helperStyle.Render("▸ "+rawJSONLabel+" (ctrl+r to show)"))
	}
	return strings.Join(parts, "\n")
}

func indentContinuation(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
