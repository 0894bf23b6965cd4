package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/promptrefiner/internal/render"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	state := m.controller.State()
	view := render.Render(state)

	parts := []string{
		m.heroView(),
		m.ideaPanel(),
		m.filesPanel(),
		m.submitRow(view),
	}
	if view.Error != "" {
		parts = append(parts, errorStyle.Render(view.Error))
	}
	if view.ShowResult {
		parts = append(parts, m.viewport.View())
	}
	parts = append(parts, m.statusBarView())
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroTitleStyle.Render(heroTitle),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) ideaPanel() string {
	return strings.Join([]string{
		sectionHeaderStyle.Render(ideaLabel),
		m.idea.View(),
	}, "\n")
}

func (m *model) filesPanel() string {
	lines := []string{
		sectionHeaderStyle.Render(filesLabel),
		m.filesInput.View(),
	}
	if len(m.fileCaptions) == 0 {
		lines = append(lines, helperStyle.Render("Enter paths separated by commas, then press Enter to select."))
	}
	lines = append(lines, m.fileCaptions...)
	if m.selectionError != "" {
		lines = append(lines, errorStyle.Render(m.selectionError))
	}
	return strings.Join(lines, "\n")
}

func (m *model) submitRow(view render.View) string {
	state := m.controller.State()
	label := render.SubmitLabel(state)
	var button string
	if render.SubmitEnabled(state, m.collector.CanSubmit()) {
		button = buttonStyle.Render(label + " 🚀")
	} else {
		button = disabledButtonStyle.Render(label)
	}
	row := []string{button}
	if view.Busy {
		row = append(row, m.spinner.View())
	}
	if m.infoMessage != "" {
		row = append(row, helperStyle.Render(m.infoMessage))
	}
	return strings.Join(row, " ")
}

func (m *model) statusBarView() string {
	stats := []string{
		fmt.Sprintf("Focus %s", m.focus.label()),
		fmt.Sprintf("Files %d", len(m.collector.Files())),
		fmt.Sprintf("State %s", m.controller.State().Phase()),
	}
	if m.lastJob != nil {
		stats = append(stats, fmt.Sprintf("Job %s %s", m.lastJob.ID, m.lastJob.Status))
	}
	stats = append(stats, "ctrl+s submit • tab focus • ? keys")
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"ctrl+s", "Refine prompt"},
		{"tab", "Next field"},
		{"shift+tab", "Previous field"},
		{"enter", "Select files"},
		{"ctrl+r", "Toggle raw JSON"},
		{"↑/↓", "Scroll output"},
		{"g/G", "Top or bottom"},
		{"?", "Toggle cheatsheet"},
		{"ctrl+c", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Navigation Cheatsheet")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
