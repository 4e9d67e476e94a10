package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

const (
	editName = iota
	editAge
	editBio
	editPicture
	editCount
)

// EditProfileModel edits the current user's profile. Saving pushes the
// whole set of editable fields to the backend and then replaces the
// session record with the server's version; nothing is merged locally.
type EditProfileModel struct {
	deps    *Deps
	inputs  []textinput.Model
	focus   int
	busy    bool
	errText string
}

func InitialEditProfileModel(deps *Deps) EditProfileModel {
	m := EditProfileModel{deps: deps, inputs: make([]textinput.Model, editCount)}

	for i := range m.inputs {
		m.inputs[i] = textinput.New()
	}
	m.inputs[editName].Placeholder = "Name"
	m.inputs[editAge].Placeholder = "Age"
	m.inputs[editAge].CharLimit = 3
	m.inputs[editBio].Placeholder = "Bio"
	m.inputs[editBio].CharLimit = models.BioMaxLength
	m.inputs[editPicture].Placeholder = "Profile picture URL"

	if u := deps.Session.CurrentUser(); u != nil {
		m.inputs[editName].SetValue(u.Name)
		m.inputs[editAge].SetValue(strconv.Itoa(u.Age))
		m.inputs[editBio].SetValue(u.Bio)
		m.inputs[editPicture].SetValue(u.ProfilePicture)
	}

	m.inputs[editName].Focus()
	return m
}

func (m EditProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EditProfileModel) setFocus(i int) {
	m.focus = (i + editCount) % editCount
	for n := range m.inputs {
		if n == m.focus {
			m.inputs[n].Focus()
		} else {
			m.inputs[n].Blur()
		}
	}
}

func (m *EditProfileModel) form() (models.ProfileUpdate, error) {
	age, err := strconv.Atoi(m.inputs[editAge].Value())
	if err != nil || age < models.AgeMin || age > models.AgeMax {
		return models.ProfileUpdate{}, models.ErrAgeOutOfRange
	}
	if len(m.inputs[editName].Value()) < models.NameMinLength {
		return models.ProfileUpdate{}, models.ErrNameTooShort
	}

	return models.ProfileUpdate{
		Name:           m.inputs[editName].Value(),
		Age:            age,
		Bio:            m.inputs[editBio].Value(),
		ProfilePicture: m.inputs[editPicture].Value(),
	}, nil
}

func (m EditProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			return InitialProfileModel(m.deps, 0), nil

		case "up", "shift+tab":
			m.setFocus(m.focus - 1)

		case "down", "tab":
			m.setFocus(m.focus + 1)

		case "enter":
			if m.busy {
				break
			}
			upd, err := m.form()
			if err != nil {
				m.errText = err.Error()
				break
			}
			m.busy = true
			m.errText = ""
			return m, m.deps.saveProfileCmd(upd)
		}

	case profileSavedMsg:
		next := InitialProfileModel(m.deps, 0)
		next.saved = true
		return next, nil

	case saveFailedMsg:
		m.busy = false
		m.errText = msg.err.Error()
	}

	return m, tea.Batch(cmds...)
}

func (m EditProfileModel) View() string {
	s := titleStyle.Render("Edit Profile") + "\n\n"
	for i := range m.inputs {
		s += m.inputs[i].View() + "\n"
	}
	s += "\n"

	if m.busy {
		s += "saving...\n"
	}
	if m.errText != "" {
		s += errStyle.Render(m.errText) + "\n"
	}

	s += "\n" + hintStyle.Render("enter: save · esc: cancel · ctrl+c: quit") + "\n"
	return s
}
