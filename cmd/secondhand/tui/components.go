package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/XiPingo/secondhand/internal/domain"
)

// ConfirmationDialog represents a yes/no confirmation dialog
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
}

// NewConfirmationDialog creates a new confirmation dialog with "No"
// preselected.
func NewConfirmationDialog(title, message string) *ConfirmationDialog {
	return &ConfirmationDialog{
		Title:       title,
		Message:     message,
		YesSelected: false,
	}
}

// Update reacts to a key press. done reports that the dialog was resolved,
// confirmed whether "Yes" was the answer.
func (d *ConfirmationDialog) Update(msg tea.KeyMsg) (confirmed, done bool) {
	switch msg.String() {
	case "left", "h":
		d.YesSelected = true
	case "right", "l":
		d.YesSelected = false
	case "y":
		return true, true
	case "n", "esc", "q":
		return false, true
	case "enter":
		return d.YesSelected, true
	}
	return false, false
}

// View renders the confirmation dialog
func (d *ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Yes")
	noButton := inactiveButtonStyle.Render("No")

	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Yes")
	} else {
		noButton = activeButtonStyle.Render("No")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "navigate") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc", "cancel")))

	return boxStyle.Render(b.String())
}

// productItem represents a listing in a list view.
type productItem struct {
	product *domain.Product
	seller  string
}

func (i productItem) FilterValue() string { return i.product.Name }
func (i productItem) Title() string {
	return fmt.Sprintf("%s  %s", i.product.Name, FormatPrice(i.product.Price))
}
func (i productItem) Description() string {
	parts := []string{fmt.Sprintf("#%d", i.product.ID)}
	if i.product.Category != "" {
		parts = append(parts, i.product.Category)
	}
	parts = append(parts, "seller: "+i.seller)
	if n := len(i.product.Comments); n > 0 {
		parts = append(parts, fmt.Sprintf("%d comment(s)", n))
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

// productDelegate is a custom delegate for product list items.
type productDelegate struct{}

func (d productDelegate) Height() int                             { return 2 }
func (d productDelegate) Spacing() int                            { return 1 }
func (d productDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d productDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(productItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}

// userItem represents an account in the admin panel.
type userItem struct {
	user *domain.User
}

func (i userItem) FilterValue() string { return i.user.Email }
func (i userItem) Title() string {
	title := fmt.Sprintf("#%d %s", i.user.ID, i.user.DisplayName())
	if i.user.IsAdmin {
		title += "  " + adminBadgeStyle.Render("[admin]")
	}
	return title
}
func (i userItem) Description() string {
	parts := []string{i.user.Email}
	if i.user.Phone != "" {
		parts = append(parts, i.user.Phone)
	}
	if n := len(i.user.Favorites); n > 0 {
		parts = append(parts, fmt.Sprintf("%d favorite(s)", n))
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

// userDelegate is a custom delegate for account list items.
type userDelegate struct{}

func (d userDelegate) Height() int                             { return 2 }
func (d userDelegate) Spacing() int                            { return 1 }
func (d userDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d userDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(userItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}

// newInput builds a text input with the shared styling.
func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 42
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	return ti
}

// setFocus focuses one input of a form and blurs the rest.
func setFocus(inputs []textinput.Model, focus int) tea.Cmd {
	var cmd tea.Cmd
	for i := range inputs {
		if i == focus {
			cmd = inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	return cmd
}

// updateInputs routes a message to every input of a form.
func updateInputs(inputs []textinput.Model, msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(inputs))
	for i := range inputs {
		inputs[i], cmds[i] = inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// renderFields renders labeled form fields, highlighting the focused one.
func renderFields(labels []string, inputs []textinput.Model, focus int) string {
	var b strings.Builder
	for i, label := range labels {
		style := labelStyle
		if i == focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString(" ")
		b.WriteString(inputs[i].View())
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
