package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tsawler/cohort"
	"github.com/tsawler/cohort/internal/config"
	"github.com/tsawler/cohort/model"
)

// page identifies one browsable dashboard view.
type page int

const (
	pageBranchwiseSummary page = iota
	pageUniformSummary
	pageBranchwiseGroups
	pageUniformGroups
	pageCount
)

func (p page) title() string {
	switch p {
	case pageBranchwiseSummary:
		return "Branchwise Summary"
	case pageUniformSummary:
		return "Uniform Summary"
	case pageBranchwiseGroups:
		return "Branchwise Groups"
	case pageUniformGroups:
		return "Uniform Groups"
	default:
		return "?"
	}
}

// resultMsg carries a finished allocation into the model.
type resultMsg struct {
	source   string
	result   *cohort.Result
	warnings []cohort.Warning
}

// loadErrMsg carries a failed load into the model.
type loadErrMsg struct{ err error }

// Model is the dashboard's bubbletea model.
type Model struct {
	cfg    config.Config
	styles Styles

	input    textinput.Model
	viewport viewport.Model

	source   string
	groups   int
	result   *cohort.Result
	warnings []cohort.Warning
	loadErr  string

	page    page
	loaded  bool
	loading bool
	width   int
	height  int
	ready   bool
}

// NewModel creates the dashboard model.
func NewModel(cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "path to roster (xlsx, csv, tsv, html)"
	ti.Focus()
	ti.Width = 60

	return Model{
		cfg:    cfg,
		styles: NewStyles(),
		input:  ti,
		groups: cfg.Groups,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// loadRoster allocates the given source off the UI goroutine.
func (m Model) loadRoster(source string) tea.Cmd {
	cfg := m.cfg
	groups := m.groups
	return func() tea.Msg {
		res, warnings, err := cohort.Load(source).
			Groups(groups).
			Priority(cfg.Priority...).
			RollColumn(cfg.Columns.Roll).
			NameColumn(cfg.Columns.Name).
			EmailColumn(cfg.Columns.Email).
			Result()
		if err != nil {
			return loadErrMsg{err: err}
		}
		return resultMsg{source: source, result: res, warnings: warnings}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		if m.loaded {
			m.viewport.SetContent(m.pageContent())
		}
		return m, nil

	case resultMsg:
		m.loading = false
		m.loaded = true
		m.loadErr = ""
		m.source = msg.source
		m.result = msg.result
		m.warnings = msg.warnings
		m.viewport.SetContent(m.pageContent())
		m.viewport.GotoTop()
		return m, nil

	case loadErrMsg:
		m.loading = false
		m.loadErr = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if !m.loaded {
		switch msg.String() {
		case "esc", "q":
			if m.input.Value() == "" {
				return m, tea.Quit
			}
		case "enter":
			source := strings.TrimSpace(m.input.Value())
			if source == "" {
				return m, nil
			}
			m.loading = true
			m.loadErr = ""
			return m, m.loadRoster(source)
		}
		return m.updateFocused(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		m.page = (m.page + 1) % pageCount
		m.viewport.SetContent(m.pageContent())
		m.viewport.GotoTop()
		return m, nil
	case "shift+tab", "left", "h":
		m.page = (m.page + pageCount - 1) % pageCount
		m.viewport.SetContent(m.pageContent())
		m.viewport.GotoTop()
		return m, nil
	case "+", "=":
		if m.groups < 50 {
			m.groups++
			m.loading = true
			return m, m.loadRoster(m.source)
		}
		return m, nil
	case "-", "_":
		if m.groups > 2 {
			m.groups--
			m.loading = true
			return m, m.loadRoster(m.source)
		}
		return m, nil
	case "o":
		// Back to the open prompt.
		m.loaded = false
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.loaded {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// pageContent renders the active page into plain text for the viewport.
func (m Model) pageContent() string {
	if m.result == nil {
		return ""
	}
	switch m.page {
	case pageBranchwiseSummary:
		return renderSummaryTable(m.result.BranchwiseSummary)
	case pageUniformSummary:
		return renderSummaryTable(m.result.UniformSummary)
	case pageBranchwiseGroups:
		return renderGroups(m.result.Branchwise)
	case pageUniformGroups:
		return renderGroups(m.result.Uniform)
	}
	return ""
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}
	if !m.loaded {
		return m.openView()
	}
	return m.browseView()
}

func (m Model) openView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("cohort - group allocation dashboard"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Prompt.Render("Open roster:"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	if m.loading {
		sb.WriteString(m.styles.Muted.Render("Loading..."))
	} else if m.loadErr != "" {
		sb.WriteString(m.styles.Error.Render("Error: " + m.loadErr))
	} else {
		sb.WriteString(m.styles.Muted.Render("Enter to load, ctrl+c to quit"))
	}
	return sb.String()
}

func (m Model) browseView() string {
	var tabs []string
	for p := page(0); p < pageCount; p++ {
		if p == m.page {
			tabs = append(tabs, m.styles.ActiveTab.Render(p.title()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(p.title()))
		}
	}

	header := m.styles.Header.Render(fmt.Sprintf("%s - %d groups", m.source, m.groups))
	footer := m.styles.Footer.Render("tab: switch  +/-: groups  o: open  q: quit")
	if len(m.warnings) > 0 {
		footer = m.styles.Warning.Render(fmt.Sprintf("%d warnings  ", len(m.warnings))) + footer
	}
	if m.loading {
		footer = m.styles.Muted.Render("reallocating...  ") + footer
	}

	return header + "\n" + strings.Join(tabs, " ") + "\n" + m.viewport.View() + "\n" + footer
}

// renderSummaryTable lays a summary matrix out with fixed-width columns.
func renderSummaryTable(s *model.Summary) string {
	var sb strings.Builder
	header := s.Header()

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	rows := s.Cells()
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "%-*s", widths[i], cell)
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// renderGroups lists every group with its records.
func renderGroups(alloc *model.Allocation) string {
	var sb strings.Builder
	for i, g := range alloc.Groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%d)\n", g.Name(), g.Size())
		if g.IsEmpty() {
			sb.WriteString("  (empty)\n")
			continue
		}
		for _, rec := range g.Records {
			fmt.Fprintf(&sb, "  %-12s %-6s %-24s %s\n", rec.Roll, rec.Branch, rec.Name, rec.Email)
		}
	}
	return sb.String()
}

// Run starts the dashboard and blocks until the user quits.
func Run(cfg config.Config) error {
	p := tea.NewProgram(
		NewModel(cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
