// Package tui provides the Bubble Tea dashboard shown while a scene is
// benchmarked on the headless backend.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-engine/internal/timing"
)

// SampleMsg carries a frame clock snapshot taken at an FPS rollover.
type SampleMsg timing.Sample

// DoneMsg is sent once the engine loop has returned.
type DoneMsg struct {
	Summary timing.Sample
	Err     error
}

// BenchKeyMap defines the key bindings for the bench dashboard.
type BenchKeyMap struct {
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BenchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BenchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// DefaultBenchKeyMap returns default key bindings.
func DefaultBenchKeyMap() BenchKeyMap {
	return BenchKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "stop"),
		),
	}
}

var (
	benchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	benchLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	benchValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	benchErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	benchBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)
)

// BenchModel is the Bubble Tea model for the bench dashboard.
type BenchModel struct {
	title    string
	target   uint64 // Frames to run, 0 when unbounded
	stop     func() // Asks the engine loop to close
	last     timing.Sample
	samples  int
	progress progress.Model
	help     help.Model
	keys     BenchKeyMap
	done     bool
	err      error
	quitting bool
}

// NewBenchModel creates a dashboard for a run of target frames.
// stop is called when the user quits early; it must be safe to call from
// any goroutine.
func NewBenchModel(title string, target uint64, stop func()) BenchModel {
	return BenchModel{
		title:    title,
		target:   target,
		stop:     stop,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     help.New(),
		keys:     DefaultBenchKeyMap(),
	}
}

// Init implements tea.Model.
func (m BenchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.quitting {
			m.quitting = true
			if m.stop != nil {
				m.stop()
			}
		}
		return m, nil

	case SampleMsg:
		m.last = timing.Sample(msg)
		m.samples++
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.last = msg.Summary
		return m, tea.Quit
	}

	return m, nil
}

// Result returns the final summary and the error the loop ended with.
// It is only meaningful once Done reports true.
func (m BenchModel) Result() (timing.Sample, error) {
	return m.last, m.err
}

// Done reports whether the engine loop has finished.
func (m BenchModel) Done() bool {
	return m.done
}

// Percent returns the share of target frames completed.
func (m BenchModel) Percent() float64 {
	if m.target == 0 {
		return 0
	}
	p := float64(m.last.Frames) / float64(m.target)
	if p > 1 {
		p = 1
	}
	return p
}

// View implements tea.Model.
func (m BenchModel) View() string {
	var sb strings.Builder

	sb.WriteString(benchTitleStyle.Render("bench: " + m.title))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		sb.WriteString(benchLabelStyle.Render(label))
		sb.WriteString(benchValueStyle.Render(value))
		sb.WriteString("\n")
	}

	fps := "-"
	if m.samples > 0 || m.done {
		fps = fmt.Sprintf("%d", m.last.FPS)
	}
	row("FPS", fps)
	row("Frames", fmt.Sprintf("%d", m.last.Frames))
	row("Runtime", time.Duration(m.last.TotalNanos).Round(time.Millisecond).String())
	row("Delta", fmt.Sprintf("%.3f ms", m.last.Delta*1000))

	if m.target > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.progress.ViewAs(m.Percent()))
		sb.WriteString("\n")
	}

	switch {
	case m.err != nil:
		sb.WriteString("\n")
		sb.WriteString(benchErrorStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	case m.done:
		sb.WriteString("\nfinished\n")
	case m.quitting:
		sb.WriteString("\nstopping...\n")
	default:
		sb.WriteString("\n")
		sb.WriteString(m.help.View(m.keys))
		sb.WriteString("\n")
	}

	return benchBoxStyle.Render(sb.String())
}

// RunBench shows the dashboard until a DoneMsg arrives. start is called
// with a send function once the program exists; it should launch the
// engine loop and deliver SampleMsg and DoneMsg through send.
func RunBench(model BenchModel, start func(send func(tea.Msg))) (BenchModel, error) {
	p := tea.NewProgram(model)
	start(p.Send)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	return final.(BenchModel), nil
}
