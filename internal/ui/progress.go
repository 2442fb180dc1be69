package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"buckfmt/internal/pipeline"
)

// maxActiveRows bounds the per-file lines; large trees hold thousands of build files.
const maxActiveRows = 8

const statusWidth = 9

// stageView is how a file working in a stage is shown; weight is the
// share of the file counted as done while it sits there.
type stageView struct {
	label  string
	weight float64
}

var stages = map[pipeline.Stage]stageView{
	pipeline.StageLoad:    {"loading", 0.1},
	pipeline.StageParse:   {"parsing", 0.4},
	pipeline.StageReorder: {"sorting", 0.7},
	pipeline.StageWrite:   {"writing", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

type fileItem struct {
	path   string
	status string
	stage  pipeline.Stage
	final  bool
	failed bool
}

func (it *fileItem) started() bool { return it.stage != "" }

func (it *fileItem) weight() float64 {
	if it.final {
		return 1
	}
	return stages[it.stage].weight
}

func (it *fileItem) style() lipgloss.Style {
	switch {
	case it.failed:
		return errorStyle
	case it.final:
		return doneStyle
	case it.started():
		return workingStyle
	}
	return queuedStyle
}

type progressModel struct {
	title    string
	events   <-chan pipeline.Event
	spinner  spinner.Model
	bar      progress.Model
	items    []fileItem
	byPath   map[string]*fileItem
	finished int
	failed   int
	width    int
	done     bool
}

type (
	eventMsg pipeline.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model that renders formatting
// progress for files. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]*fileItem, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileItem{path: f, status: "queued"}
		m.byPath[f] = &m.items[i]
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one pipeline event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(pipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// applyEvent folds one event into the file rows. Events for unknown or
// already finished files are ignored.
func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	it := m.byPath[ev.File]
	if it == nil || it.final {
		return nil
	}
	it.stage = ev.Stage
	switch {
	case ev.Status == pipeline.StatusError:
		it.status, it.failed = "error", true
		m.failed++
	case ev.Final():
		it.status = "done"
	case ev.Status == pipeline.StatusWorking:
		it.status = stages[ev.Stage].label
	}
	if ev.Final() {
		it.final = true
		m.finished++
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for i := range m.items {
		sum += m.items[i].weight()
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.items))
	if m.failed > 0 {
		header += fmt.Sprintf(", %d failed", m.failed)
	}
	lead := m.spinner.View()
	if m.done {
		lead = "done:"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(lead+" "+header) + "\n\n")
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, it := range m.visible() {
		status := it.style().Render(fmt.Sprintf("%*s", statusWidth, it.status))
		fmt.Fprintf(&sb, "  %s %s\n", status, truncate(it.path, nameWidth))
	}
	sb.WriteByte('\n')
	if m.done {
		sb.WriteString(m.bar.ViewAs(1))
	} else {
		sb.WriteString(m.bar.View())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// visible lists files in flight, then failures, up to maxActiveRows.
func (m *progressModel) visible() []*fileItem {
	rows := make([]*fileItem, 0, maxActiveRows)
	pick := func(keep func(*fileItem) bool) {
		for i := range m.items {
			if len(rows) == maxActiveRows {
				return
			}
			if it := &m.items[i]; keep(it) {
				rows = append(rows, it)
			}
		}
	}
	pick(func(it *fileItem) bool { return it.started() && !it.final })
	pick(func(it *fileItem) bool { return it.failed })
	return rows
}

// truncate shortens value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
