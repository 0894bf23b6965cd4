package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/promptrefiner/internal/attachment"
	"github.com/csheth/promptrefiner/internal/input"
	"github.com/csheth/promptrefiner/internal/refine"
	"github.com/csheth/promptrefiner/internal/render"
	"github.com/csheth/promptrefiner/internal/submission"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Refiner  refine.Refiner
	Endpoint string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	idea := textarea.New()
	idea.Placeholder = ideaPlaceholder
	idea.ShowLineNumbers = false
	idea.CharLimit = 0
	idea.SetWidth(76)
	idea.SetHeight(4)
	idea.Focus()

	filesInput := textinput.New()
	filesInput.Placeholder = filesPlaceholder
	filesInput.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	return &model{
		config:        config,
		controller:    submission.NewController(config.Refiner),
		jobs:          newJobBus(),
		layout:        newPageLayout(),
		idea:          idea,
		filesInput:    filesInput,
		spinner:       spin,
		viewport:      vp,
		focus:         focusIdea,
		infoMessage:   idleMessage,
		viewportDirty: true,
	}
}

type model struct {
	config     Config
	controller *submission.Controller
	collector  input.Collector
	jobs       *jobBus
	layout     pageLayout

	idea       textarea.Model
	filesInput textinput.Model
	spinner    spinner.Model
	viewport   viewport.Model

	focus          focusArea
	rawVisible     bool
	helpVisible    bool
	selectionError string
	fileCaptions   []string
	infoMessage    string
	lastJob        *jobSnapshot
	viewportDirty  bool
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.controller.State().Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case jobSignalMsg:
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		return m, nil
	case jobResultEnvelope:
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case refineResultMsg:
		return m, m.handleRefineResult(msg)
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		return m, m.submit()
	case "ctrl+r":
		m.rawVisible = !m.rawVisible
		m.markViewportDirty()
		return m, nil
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	}

	switch m.focus {
	case focusIdea:
		var cmd tea.Cmd
		m.idea, cmd = m.idea.Update(key)
		m.collector.SetText(m.idea.Value())
		return m, cmd
	case focusFiles:
		if key.Type == tea.KeyEnter {
			m.commitFileSelection(m.filesInput.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.filesInput, cmd = m.filesInput.Update(key)
		return m, cmd
	default:
		return m.handleOutputKey(key)
	}
}

func (m *model) handleOutputKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "q":
		return m, tea.Quit
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	return m, cmd
}

func (m *model) cycleFocus(step int) {
	idx := 0
	for i, area := range focusSequence {
		if area == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(focusSequence)) % len(focusSequence)
	m.setFocus(focusSequence[idx])
}

func (m *model) setFocus(area focusArea) {
	m.focus = area
	m.idea.Blur()
	m.filesInput.Blur()
	switch area {
	case focusIdea:
		m.idea.Focus()
	case focusFiles:
		m.filesInput.Focus()
	}
}

// commitFileSelection treats the line as one selection event: the result
// replaces the previous selection, and an empty line clears it. A path that
// cannot be read leaves the previous selection in place.
func (m *model) commitFileSelection(raw string) {
	paths := attachment.ParsePaths(raw)
	files, err := attachment.Load(paths)
	if err != nil {
		m.selectionError = err.Error()
		return
	}
	m.selectionError = ""
	m.collector.SetFiles(files)
	m.fileCaptions = describeFiles(files)
	switch len(files) {
	case 0:
		m.infoMessage = "Attachment selection cleared."
	case 1:
		m.infoMessage = "Selected 1 file."
	default:
		m.infoMessage = fmt.Sprintf("Selected %d files.", len(files))
	}
}

// submit is a no-op while the trigger is disabled, which covers both the
// empty-input case and a request already in flight.
func (m *model) submit() tea.Cmd {
	state := m.controller.State()
	if !render.SubmitEnabled(state, m.collector.CanSubmit()) {
		return nil
	}
	ticket, err := m.controller.Begin(m.collector.State())
	if err != nil {
		return nil
	}
	m.infoMessage = fmt.Sprintf("Sending to %s…", m.endpointLabel())
	m.markViewportDirty()
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindRefine, refineJob(ticket)))
}

func (m *model) handleRefineResult(msg refineResultMsg) tea.Cmd {
	if !m.controller.Resolve(msg.outcome) {
		return nil
	}
	switch m.controller.State().Phase() {
	case submission.PhaseSucceeded:
		m.infoMessage = successMessage
		m.viewport.GotoTop()
	default:
		m.infoMessage = ""
	}
	m.markViewportDirty()
	return nil
}

func (m *model) endpointLabel() string {
	if strings.TrimSpace(m.config.Endpoint) == "" {
		return "the refinement backend"
	}
	return m.config.Endpoint
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewport.SetContent(m.buildOutputContent(render.Render(m.controller.State())))
	m.viewportDirty = false
}

func (m *model) applyLayout() {
	m.idea.SetWidth(m.layout.contentWidth)
	m.idea.SetHeight(m.layout.ideaHeight)
	m.filesInput.Width = m.layout.contentWidth - 2
	m.viewport.Width = m.layout.contentWidth
	m.viewport.Height = m.layout.outputHeight
	m.markViewportDirty()
}

// PDFs are parsed once per selection rather than on every frame.
func describeFiles(files []attachment.File) []string {
	captions := make([]string, 0, len(files))
	for _, file := range files {
		captions = append(captions, "  • "+attachment.Describe(file))
		if preview := attachment.Preview(file, filePreviewLimit); preview != "" {
			captions = append(captions, helperStyle.Render("    "+preview))
		}
	}
	return captions
}
