package main

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = sync.OnceValue(func() lipgloss.Style {
	return stderrRenderer().NewStyle().Foreground(lipgloss.Color("212"))
})

var ellipsisSpinner = spinner.Spinner{
	Frames: []string{"", ".", "..", "..."},
	FPS:    time.Second / 3, //nolint:mnd
}

type waitDoneMsg struct{ err error }

// waitModel animates the wait for the proxy to answer.
type waitModel struct {
	head  spinner.Model
	tail  spinner.Model
	label string
	err   error
}

func newWaitModel(label string) waitModel {
	return waitModel{
		head:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle())),
		tail:  spinner.New(spinner.WithSpinner(ellipsisSpinner)),
		label: " " + label,
	}
}

// Init initializes the animation.
func (m waitModel) Init() tea.Cmd {
	return tea.Batch(m.head.Tick, m.tail.Tick)
}

// Update handles messages.
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = huh.ErrUserAborted
			return m, tea.Quit
		}
	}
	cmds := make([]tea.Cmd, 2) //nolint:mnd
	m.head, cmds[0] = m.head.Update(msg)
	m.tail, cmds[1] = m.tail.Update(msg)
	return m, tea.Batch(cmds...)
}

// View renders the animation.
func (m waitModel) View() string {
	return m.head.View() + m.label + m.tail.View()
}
