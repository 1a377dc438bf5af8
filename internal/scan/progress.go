package scan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type progressMsg struct {
	done, total int
}

type finishedMsg struct {
	results []Result
	err     error
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// progressModel renders a progress bar while a scan runs
type progressModel struct {
	label    string
	bar      progress.Model
	done     int
	total    int
	results  []Result
	err      error
	finished bool
	aborted  bool
}

func newProgressModel(label string, total int) progressModel {
	return progressModel{
		label: label,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total: total,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(60, msg.Width-30))
	case progressMsg:
		m.done = msg.done
		m.total = msg.total
	case finishedMsg:
		m.results = msg.results
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished || m.aborted {
		return ""
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString(" ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total)))
	b.WriteString("\n")
	return b.String()
}

// RunWithProgress runs Scan while drawing a progress bar on out
func RunWithProgress(ctx context.Context, s *Scanner, label string, urls []string, out io.Writer) ([]Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(label, len(urls)), tea.WithOutput(out), tea.WithContext(ctx))

	go func() {
		results, err := s.Scan(ctx, urls, func(done, total int) {
			p.Send(progressMsg{done: done, total: total})
		})
		p.Send(finishedMsg{results: results, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(progressModel)
	if m.aborted {
		return nil, context.Canceled
	}
	return m.results, m.err
}
