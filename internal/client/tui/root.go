package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel is the entry screen: it runs the one-time session restore and
// hands off to the login screen or straight to discover, depending on
// whether a session survived the restart.
type RootModel struct {
	deps    *Deps
	spinner spinner.Model
}

func InitialRootModel(deps *Deps) RootModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	return RootModel{deps: deps, spinner: s}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.deps.restoreCmd())
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case restoredMsg:
		if m.deps.Session.CurrentUser() != nil {
			next := InitialDiscoverModel(m.deps)
			return next, next.Init()
		}
		next := InitialLoginModel(m.deps)
		return next, next.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m RootModel) View() string {
	return "\n " + m.spinner.View() + " starting sparkmatch...\n"
}
