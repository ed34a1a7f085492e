package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/XiPingo/secondhand/internal/service"
)

// welcomeModel is the entry menu shown before a session exists.
type welcomeModel struct {
	cursor int
}

var welcomeChoices = []string{"Log in", "Create an account", "Quit"}

func newWelcomeModel() welcomeModel {
	return welcomeModel{}
}

func (m App) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.welcome.cursor > 0 {
				m.welcome.cursor--
			}
		case "down", "j":
			if m.welcome.cursor < len(welcomeChoices)-1 {
				m.welcome.cursor++
			}
		case "q":
			return m, tea.Quit
		case "enter":
			switch m.welcome.cursor {
			case 0:
				m.screen = screenLogin
				m.login = newLoginModel()
				return m, setFocus(m.login.inputs, 0)
			case 1:
				m.screen = screenRegister
				m.register = newRegisterModel()
				return m, setFocus(m.register.inputs, 0)
			case 2:
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m App) viewWelcome() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Welcome"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Buy and sell second-hand, locally."))
	b.WriteString("\n\n")

	for i, choice := range welcomeChoices {
		if i == m.welcome.cursor {
			b.WriteString(selectedItemStyle.Render("▸ " + choice))
		} else {
			b.WriteString(unselectedItemStyle.Render("  " + choice))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(FormatKey("↑/↓", "navigate") + " • " + FormatKey("enter", "select") + " • " + FormatKey("q", "quit")))

	return boxStyle.Render(b.String())
}

// loginModel holds the login form state.
type loginModel struct {
	inputs []textinput.Model // email, password
	focus  int
}

func newLoginModel() loginModel {
	email := newInput("you@example.com", 64)
	password := newInput("password", 64)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{inputs: []textinput.Model{email, password}}
}

func (m App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.screen = screenWelcome
			return m, nil

		case "tab", "down":
			m.login.focus = (m.login.focus + 1) % len(m.login.inputs)
			return m, setFocus(m.login.inputs, m.login.focus)

		case "shift+tab", "up":
			m.login.focus = (m.login.focus + len(m.login.inputs) - 1) % len(m.login.inputs)
			return m, setFocus(m.login.inputs, m.login.focus)

		case "enter":
			if m.login.focus < len(m.login.inputs)-1 {
				m.login.focus++
				return m, setFocus(m.login.inputs, m.login.focus)
			}
			return m.submitLogin()
		}
	}

	cmd := updateInputs(m.login.inputs, msg)
	return m, cmd
}

func (m App) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.login.inputs[0].Value())
	password := strings.TrimSpace(m.login.inputs[1].Value())

	user, err := m.svc.Accounts.Authenticate(context.Background(), email, password)
	if err != nil {
		m.flashError(err)
		return m, nil
	}

	m.session = user
	m.logger.Info().Int("user_id", user.ID).Msg("logged in")
	m.flashSuccess("Welcome back, %s", user.DisplayName())
	m.gotoBrowse()
	return m, nil
}

func (m App) viewLogin() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Log in"))
	b.WriteString("\n")
	b.WriteString(renderFields([]string{"Email", "Password"}, m.login.inputs, m.login.focus))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("tab", "next field") + " • " + FormatKey("enter", "submit") + " • " + FormatKey("esc", "back")))

	return boxStyle.Render(b.String())
}

// registerModel holds the registration form state.
type registerModel struct {
	inputs []textinput.Model // email, phone, password, nickname
	focus  int
}

func newRegisterModel() registerModel {
	email := newInput("you@example.com", 64)
	phone := newInput("phone (optional)", 32)
	password := newInput("password", 64)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	nickname := newInput("nickname (optional)", 32)

	return registerModel{inputs: []textinput.Model{email, phone, password, nickname}}
}

func (m App) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.screen = screenWelcome
			return m, nil

		case "tab", "down":
			m.register.focus = (m.register.focus + 1) % len(m.register.inputs)
			return m, setFocus(m.register.inputs, m.register.focus)

		case "shift+tab", "up":
			m.register.focus = (m.register.focus + len(m.register.inputs) - 1) % len(m.register.inputs)
			return m, setFocus(m.register.inputs, m.register.focus)

		case "enter":
			if m.register.focus < len(m.register.inputs)-1 {
				m.register.focus++
				return m, setFocus(m.register.inputs, m.register.focus)
			}
			return m.submitRegister()
		}
	}

	cmd := updateInputs(m.register.inputs, msg)
	return m, cmd
}

func (m App) submitRegister() (tea.Model, tea.Cmd) {
	out, err := m.svc.Accounts.Register(context.Background(), service.RegisterInput{
		Email:    strings.TrimSpace(m.register.inputs[0].Value()),
		Phone:    strings.TrimSpace(m.register.inputs[1].Value()),
		Password: strings.TrimSpace(m.register.inputs[2].Value()),
		Nickname: strings.TrimSpace(m.register.inputs[3].Value()),
	})
	if err != nil {
		m.flashError(err)
		return m, nil
	}

	// A fresh account goes straight into a session.
	m.session = out.User
	m.flashSuccess("Account created. Welcome, %s", out.User.DisplayName())
	m.gotoBrowse()
	return m, nil
}

func (m App) viewRegister() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Create an account"))
	b.WriteString("\n")
	b.WriteString(renderFields([]string{"Email", "Phone", "Password", "Nickname"}, m.register.inputs, m.register.focus))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("tab", "next field") + " • " + FormatKey("enter", "submit") + " • " + FormatKey("esc", "back")))

	return boxStyle.Render(b.String())
}
