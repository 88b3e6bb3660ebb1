package direct

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUISink drives a bubbletea program showing a live list of commands
// and their status, selected via --progress=tui. Grounded on
// internal/adapters/tui/model.go's task-list-plus-status Update loop,
// trimmed to a single scrolling list (no split log viewport) since
// kiln's subprocess output is already captured per-ExecError rather than
// streamed live per spec.md §4.9.
type TUISink struct {
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

type tuiStatus string

const (
	tuiPending tuiStatus = "pending"
	tuiRunning tuiStatus = "running"
	tuiDone    tuiStatus = "done"
	tuiFailed  tuiStatus = "failed"
)

type tuiRow struct {
	desc   string
	status tuiStatus
}

type tuiModel struct {
	rows  []tuiRow
	total int
}

type tuiStartedMsg struct{ desc string }
type tuiFinishedMsg struct {
	desc string
	err  error
}
type tuiPlanMsg struct{ total int }

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tuiPlanMsg:
		m.total = msg.total
	case tuiStartedMsg:
		m.rows = append(m.rows, tuiRow{desc: msg.desc, status: tuiRunning})
	case tuiFinishedMsg:
		for i := range m.rows {
			if m.rows[i].desc == msg.desc && m.rows[i].status == tuiRunning {
				if msg.err != nil {
					m.rows[i].status = tuiFailed
				} else {
					m.rows[i].status = tuiDone
				}
				break
			}
		}
	}
	return m, nil
}

var (
	styleRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func (m tuiModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d commands\n", m.total)
	for _, row := range m.rows {
		switch row.status {
		case tuiRunning:
			b.WriteString(styleRunning.Render("running "))
		case tuiDone:
			b.WriteString(styleDone.Render("done    "))
		case tuiFailed:
			b.WriteString(styleFailed.Render("failed  "))
		}
		b.WriteString(row.desc)
		b.WriteString("\n")
	}
	return b.String()
}

// NewTUISink starts a bubbletea program rendering the live command list.
// opts is forwarded to tea.NewProgram — tests pass tea.WithInput/
// tea.WithOutput to run against an io.Discard/strings.Reader pair
// instead of a real terminal, the same pattern internal/app/app_test.go
// uses to drive bubbletea programs headlessly. Close stops the program.
func NewTUISink(opts ...tea.ProgramOption) *TUISink {
	p := tea.NewProgram(tuiModel{}, opts...)
	s := &TUISink{program: p, done: make(chan struct{})}
	go func() {
		_, _ = p.Run()
		close(s.done)
	}()
	return s
}

func (s *TUISink) Plan(total int) { s.program.Send(tuiPlanMsg{total: total}) }

func (s *TUISink) Started(pc *PendingCommand) {
	s.program.Send(tuiStartedMsg{desc: describe(pc)})
}

func (s *TUISink) Finished(pc *PendingCommand, err error) {
	s.program.Send(tuiFinishedMsg{desc: describe(pc), err: err})
}

func (s *TUISink) Close() error {
	s.program.Quit()
	<-s.done
	return nil
}

func describe(pc *PendingCommand) string {
	if pc.Description != "" {
		return pc.Description
	}
	return pc.Command
}
