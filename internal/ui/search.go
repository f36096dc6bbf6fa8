package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/lightssdp/internal/discovery"
)

// SearchFunc runs one search and returns its result
type SearchFunc func() (*discovery.Result, error)

// searchDoneMsg carries the search outcome back into the program
type searchDoneMsg struct {
	result *discovery.Result
	err    error
}

// searchModel shows a spinner until the search returns. Input is ignored;
// the search always ends when its collection window closes.
type searchModel struct {
	spinner spinner.Model
	label   string
	window  time.Duration
	started time.Time
	run     SearchFunc

	result *discovery.Result
	err    error
	done   bool
}

func newSearchModel(label string, window time.Duration, run SearchFunc) searchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return searchModel{
		spinner: s,
		label:   label,
		window:  window,
		started: time.Now(),
		run:     run,
	}
}

// Init implements tea.Model
func (m searchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, runSearchCmd(m.run))
}

// runSearchCmd performs the blocking search off the UI goroutine
func runSearchCmd(run SearchFunc) tea.Cmd {
	return func() tea.Msg {
		result, err := run()
		return searchDoneMsg{result: result, err: err}
	}
}

// Update implements tea.Model
func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m searchModel) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	line := "  " + m.spinner.View() + " " + SpinnerLabelStyle.Render(m.label)
	if m.window > 0 {
		line += " " + TroubleshootingItemStyle.Render(fmt.Sprintf("(%s / %s)", elapsed, m.window))
	}
	return line + "\n"
}

// RunSearch runs search behind a spinner on stdout. window is the expected
// collection time, shown next to the elapsed time. When stdout is not a
// terminal the search runs without any animation.
func RunSearch(label string, window time.Duration, search SearchFunc) (*discovery.Result, error) {
	return runSearch(os.Stdout, IsTerminal(), label, window, search)
}

func runSearch(out io.Writer, interactive bool, label string, window time.Duration, search SearchFunc) (*discovery.Result, error) {
	if !interactive {
		return search()
	}

	p := tea.NewProgram(
		newSearchModel(label, window, search),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("search display failed: %w", err)
	}

	m, ok := final.(searchModel)
	if !ok || !m.done {
		return nil, fmt.Errorf("search interrupted")
	}
	return m.result, m.err
}
