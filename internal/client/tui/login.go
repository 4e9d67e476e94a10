package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the credentials screen shown while anonymous.
type LoginModel struct {
	deps     *Deps
	email    textinput.Model
	password textinput.Model
	busy     bool
	errText  string
}

func InitialLoginModel(deps *Deps) LoginModel {
	m := LoginModel{deps: deps}

	m.email = textinput.New()
	m.email.Placeholder = "Email"
	m.email.CharLimit = 128
	m.email.Focus()

	m.password = textinput.New()
	m.password.Placeholder = "Password"
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'
	m.password.CharLimit = 128

	return m
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		emailCmd tea.Cmd
		passCmd  tea.Cmd
	)
	m.email, emailCmd = m.email.Update(msg)
	m.password, passCmd = m.password.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up", "shift+tab":
			m.email.Focus()
			m.password.Blur()

		case "down", "tab":
			m.password.Focus()
			m.email.Blur()

		case "ctrl+n":
			return InitialSignupModel(m.deps), textinput.Blink

		case "enter":
			if m.busy {
				break
			}
			if m.email.Value() == "" || m.password.Value() == "" {
				m.errText = "email and password are required"
				break
			}
			m.busy = true
			m.errText = ""
			return m, m.deps.loginCmd(m.email.Value(), m.password.Value())
		}

	case authOKMsg:
		next := InitialDiscoverModel(m.deps)
		return next, next.Init()

	case authFailedMsg:
		m.busy = false
		m.errText = msg.err.Error()
	}

	return m, tea.Batch(emailCmd, passCmd)
}

func (m LoginModel) View() string {
	s := titleStyle.Render("Sparkmatch · Sign In") + "\n\n"
	s += m.email.View() + "\n"
	s += m.password.View() + "\n\n"

	if m.busy {
		s += "signing in...\n"
	}
	if m.errText != "" {
		s += errStyle.Render(m.errText) + "\n"
	}

	s += "\n" + hintStyle.Render("enter: sign in · ctrl+n: create account · ctrl+c: quit") + "\n"
	return s
}
