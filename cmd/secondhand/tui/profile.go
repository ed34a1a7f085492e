package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/XiPingo/secondhand/internal/service"
)

// profileForm holds the profile screen. The avatar works like product
// images: entering a path imports the file right away, and an empty avatar
// field submits the whole form.
type profileForm struct {
	inputs []textinput.Model // email, phone, nickname, avatar path
	avatar string
	focus  int
}

var profileLabels = []string{"Email", "Phone", "Nickname", "Avatar"}

const avatarField = 3

// startProfile opens the form prefilled from the session.
func (m *App) startProfile() {
	f := profileForm{
		inputs: []textinput.Model{
			newInput("email", 64),
			newInput("phone", 32),
			newInput("nickname", 32),
			newInput("path to an avatar image", 128),
		},
		avatar: m.session.Avatar,
	}
	f.inputs[0].SetValue(m.session.Email)
	f.inputs[1].SetValue(m.session.Phone)
	f.inputs[2].SetValue(m.session.Nickname)

	m.profile = f
	m.screen = screenProfile
}

func (m App) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.gotoBrowse()
			return m, nil

		case "tab", "down":
			m.profile.focus = (m.profile.focus + 1) % len(m.profile.inputs)
			return m, setFocus(m.profile.inputs, m.profile.focus)

		case "shift+tab", "up":
			m.profile.focus = (m.profile.focus + len(m.profile.inputs) - 1) % len(m.profile.inputs)
			return m, setFocus(m.profile.inputs, m.profile.focus)

		case "enter":
			if m.profile.focus < avatarField {
				m.profile.focus++
				return m, setFocus(m.profile.inputs, m.profile.focus)
			}
			if strings.TrimSpace(m.profile.inputs[avatarField].Value()) != "" {
				m.stageAvatar()
				return m, nil
			}
			return m.submitProfile()
		}
	}

	cmd := updateInputs(m.profile.inputs, msg)
	return m, cmd
}

func (m *App) stageAvatar() {
	src := strings.TrimSpace(m.profile.inputs[avatarField].Value())
	path, ok := m.svc.Library.Import(src)
	if !ok {
		m.flashErrorf("Could not read image %q", src)
		return
	}

	m.profile.avatar = path
	m.profile.inputs[avatarField].Reset()
	m.flashSuccess("Avatar set: %s", path)
}

func (m App) submitProfile() (tea.Model, tea.Cmd) {
	err := m.svc.Accounts.UpdateProfile(context.Background(), service.UpdateProfileInput{
		UserID:   m.session.ID,
		Email:    strings.TrimSpace(m.profile.inputs[0].Value()),
		Phone:    strings.TrimSpace(m.profile.inputs[1].Value()),
		Nickname: strings.TrimSpace(m.profile.inputs[2].Value()),
		Avatar:   m.profile.avatar,
	})
	if err != nil {
		m.flashError(err)
		return m, nil
	}

	m.flashSuccess("Profile saved")
	m.gotoBrowse()
	return m, nil
}

func (m App) viewProfile() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("My profile"))
	b.WriteString("\n")
	b.WriteString(renderFields(profileLabels, m.profile.inputs, m.profile.focus))
	b.WriteString("\n")

	if m.profile.avatar != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Current"))
		b.WriteString(" " + mutedStyle.Render(m.profile.avatar))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		FormatKey("tab", "next field") + " • " +
			FormatKey("enter", "set avatar / save") + " • " +
			FormatKey("esc", "back"),
	))

	return boxStyle.Render(b.String())
}
