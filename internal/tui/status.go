// Package tui implements the optional --status live dashboard showing
// signal levels, pilot level, tuning offset and stereo lock state while the
// receiver runs.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hzradio/fmradion/pipeline"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	unlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// StatsMsg delivers a pipeline.Stats update to the running TUI program.
type StatsMsg pipeline.Stats

type model struct {
	stats pipeline.Stats
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatsMsg:
		m.stats = pipeline.Stats(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	lock := unlockedStyle.Render("no")
	if m.stats.StereoLocked {
		lock = lockedStyle.Render("yes")
	}
	return fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %.1f Hz\n%s %s\n\npress q to quit\n",
		labelStyle.Render("IF RMS"), valueStyle.Render(fmt.Sprintf("%.4f", m.stats.IFRMS)),
		labelStyle.Render("Baseband"), valueStyle.Render(fmt.Sprintf("%.4f", m.stats.BasebandLevel)),
		labelStyle.Render("Pilot level"), valueStyle.Render(fmt.Sprintf("%.4f", m.stats.PilotLevel)),
		labelStyle.Render("Tuning offset"), m.stats.TuningOffset,
		labelStyle.Render("Stereo lock"), lock,
	)
}

// Program wraps a running bubbletea program that the pipeline driver feeds
// via Send(StatsMsg{...}).
type Program struct {
	p *tea.Program
}

// NewProgram builds the status dashboard; Run starts it.
func NewProgram() *Program {
	return &Program{p: tea.NewProgram(model{})}
}

// Send delivers a stats update to the dashboard.
func (p *Program) Send(s pipeline.Stats) {
	p.p.Send(StatsMsg(s))
}

// Run blocks until the user quits the dashboard.
func (p *Program) Run() error {
	_, err := p.p.Run()
	return err
}
