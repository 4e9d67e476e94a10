package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldAge
	fieldBio
	fieldCount
)

// SignupModel is the account-creation form. All validation happens here,
// before anything reaches the session manager.
type SignupModel struct {
	deps    *Deps
	inputs  []textinput.Model
	focus   int
	busy    bool
	errText string
}

func InitialSignupModel(deps *Deps) SignupModel {
	m := SignupModel{deps: deps, inputs: make([]textinput.Model, fieldCount)}

	for i := range m.inputs {
		m.inputs[i] = textinput.New()
	}
	m.inputs[fieldName].Placeholder = "Name"
	m.inputs[fieldEmail].Placeholder = "Email"
	m.inputs[fieldPassword].Placeholder = "Password"
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '•'
	m.inputs[fieldConfirm].Placeholder = "Confirm password"
	m.inputs[fieldConfirm].EchoMode = textinput.EchoPassword
	m.inputs[fieldConfirm].EchoCharacter = '•'
	m.inputs[fieldAge].Placeholder = "Age"
	m.inputs[fieldAge].CharLimit = 3
	m.inputs[fieldBio].Placeholder = "Bio (optional)"
	m.inputs[fieldBio].CharLimit = models.BioMaxLength

	m.inputs[fieldName].Focus()
	return m
}

func (m SignupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SignupModel) setFocus(i int) {
	m.focus = (i + fieldCount) % fieldCount
	for n := range m.inputs {
		if n == m.focus {
			m.inputs[n].Focus()
		} else {
			m.inputs[n].Blur()
		}
	}
}

// form assembles and validates the signup payload. A nil error means the
// payload is safe to submit.
func (m *SignupModel) form() (models.SignupData, error) {
	age, err := strconv.Atoi(m.inputs[fieldAge].Value())
	if err != nil {
		return models.SignupData{}, models.ErrAgeOutOfRange
	}

	data := models.SignupData{
		Name:     m.inputs[fieldName].Value(),
		Email:    m.inputs[fieldEmail].Value(),
		Password: m.inputs[fieldPassword].Value(),
		Age:      age,
		Bio:      m.inputs[fieldBio].Value(),
	}
	if err := data.Validate(); err != nil {
		return models.SignupData{}, err
	}
	return data, nil
}

func (m SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+b", "esc":
			return InitialLoginModel(m.deps), textinput.Blink

		case "up", "shift+tab":
			m.setFocus(m.focus - 1)

		case "down", "tab":
			m.setFocus(m.focus + 1)

		case "enter":
			if m.busy {
				break
			}
			if m.inputs[fieldPassword].Value() != m.inputs[fieldConfirm].Value() {
				m.errText = "passwords do not match"
				break
			}
			data, err := m.form()
			if err != nil {
				m.errText = err.Error()
				break
			}
			m.busy = true
			m.errText = ""
			return m, m.deps.signupCmd(data)
		}

	case authOKMsg:
		next := InitialDiscoverModel(m.deps)
		return next, next.Init()

	case authFailedMsg:
		m.busy = false
		m.errText = msg.err.Error()
	}

	return m, tea.Batch(cmds...)
}

func (m SignupModel) View() string {
	s := titleStyle.Render("Sparkmatch · Create Account") + "\n\n"
	for i := range m.inputs {
		s += m.inputs[i].View() + "\n"
	}
	s += "\n"

	if m.busy {
		s += "creating account...\n"
	}
	if m.errText != "" {
		s += errStyle.Render(m.errText) + "\n"
	}

	s += "\n" + hintStyle.Render("enter: sign up · esc: back to sign in · ctrl+c: quit") + "\n"
	return s
}
