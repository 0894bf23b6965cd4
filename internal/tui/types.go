package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/promptrefiner/internal/submission"
)

type focusArea int

const (
	focusIdea focusArea = iota
	focusFiles
	focusOutput
)

var focusSequence = []focusArea{focusIdea, focusFiles, focusOutput}

func (f focusArea) label() string {
	switch f {
	case focusFiles:
		return "FILES"
	case focusOutput:
		return "OUTPUT"
	default:
		return "IDEA"
	}
}

const (
	heroTitle   = "✨ AI Prompt Refiner"
	heroTagline = "Transform messy ideas into structured technical requirements."

	ideaLabel        = "Describe your idea:"
	ideaPlaceholder  = "e.g., I want an Uber-like app for tractors..."
	filesLabel       = "Upload Sketches or Docs (Optional):"
	filesPlaceholder = "~/sketch.png, ~/brief.pdf"
	outputTitle      = "🎯 Refined Output"
	rawJSONLabel     = "View Raw JSON (For Developers)"
	idleMessage      = "Describe your idea or attach files to begin."
	successMessage   = "Refined output ready."
	filePreviewLimit = 120
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	minOutputHeight           = 6
)

type refineResultMsg struct {
	outcome submission.Outcome
}

var (
	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	heroTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	sectionHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	fieldLabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	cardStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	rawJSONStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Padding(0, 2)
)
