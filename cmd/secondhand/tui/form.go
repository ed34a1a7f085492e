package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/service"
)

// Field positions in the publish/edit form. The description is a multi-line
// textarea; every other field is a single-line input.
const (
	nameField = iota
	categoryField
	descField
	priceField
	imageField
)

var productFormLabels = []string{"Name", "Category", "Description", "Price", "Add image"}

// productForm is shared by the publish and edit screens. Images are staged
// one at a time: entering a path on the image field imports it into the
// managed directory right away, and an empty image field submits the form.
type productForm struct {
	inputs    []textinput.Model // name, category, price, image path
	desc      textarea.Model
	focus     int
	editingID int     // 0 while publishing a new listing
	oldPrice  float64 // fallback when an edited price does not parse
	images    []string
}

func newProductForm() productForm {
	desc := textarea.New()
	desc.Placeholder = "description (optional)"
	desc.CharLimit = 500
	desc.SetWidth(42)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	return productForm{
		inputs: []textinput.Model{
			newInput("what are you selling?", 64),
			newInput("category (optional)", 32),
			newInput("price, e.g. 120.50", 16),
			newInput("path to an image file", 128),
		},
		desc:   desc,
		images: []string{},
	}
}

// inputAt returns the single-line input at a focus position, nil for the
// description field.
func (f *productForm) inputAt(focus int) *textinput.Model {
	switch focus {
	case nameField:
		return &f.inputs[0]
	case categoryField:
		return &f.inputs[1]
	case priceField:
		return &f.inputs[2]
	case imageField:
		return &f.inputs[3]
	}
	return nil
}

// focusField moves focus to one field, blurring the rest.
func (f *productForm) focusField(focus int) tea.Cmd {
	f.focus = focus
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.desc.Blur()
	if focus == descField {
		return f.desc.Focus()
	}
	return f.inputAt(focus).Focus()
}

// update routes a message to every field; only the focused one reacts.
func (f *productForm) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(f.inputs)+1)
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	f.desc, cmd = f.desc.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// startPublish opens an empty form.
func (m *App) startPublish() {
	m.form = newProductForm()
	m.screen = screenPublish
}

// startEdit opens the form prefilled with the listing's current values.
func (m *App) startEdit(p *domain.Product) {
	f := newProductForm()
	f.editingID = p.ID
	f.oldPrice = p.Price
	f.images = append([]string{}, p.Images...)
	f.inputs[0].SetValue(p.Name)
	f.inputs[1].SetValue(p.Category)
	f.desc.SetValue(p.Description)
	f.inputs[2].SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
	m.form = f
	m.screen = screenEdit
}

func (m App) updateProductForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.cancelProductForm()
			return m, nil

		case "tab":
			return m, m.form.focusField((m.form.focus + 1) % len(productFormLabels))

		case "shift+tab":
			return m, m.form.focusField((m.form.focus + len(productFormLabels) - 1) % len(productFormLabels))

		case "down", "up":
			// Inside the description these keys move the cursor instead.
			if m.form.focus != descField {
				if key.String() == "down" {
					return m, m.form.focusField((m.form.focus + 1) % len(productFormLabels))
				}
				return m, m.form.focusField((m.form.focus + len(productFormLabels) - 1) % len(productFormLabels))
			}

		case "enter":
			switch {
			case m.form.focus == descField:
				// Falls through to the textarea, which inserts a newline.
			case m.form.focus < imageField:
				return m, m.form.focusField(m.form.focus + 1)
			case strings.TrimSpace(m.form.inputAt(imageField).Value()) != "":
				// On the image field, enter stages a path and an empty
				// field submits.
				m.stageImage()
				return m, nil
			default:
				return m.submitProductForm()
			}
		}
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m *App) cancelProductForm() {
	if m.form.editingID != 0 {
		m.openDetail(m.form.editingID, m.detail.from)
		return
	}
	m.gotoBrowse()
}

// stageImage copies the entered file into the managed directory and keeps
// the resulting path for the submit. Import failures only flash; nothing
// is staged.
func (m *App) stageImage() {
	src := strings.TrimSpace(m.form.inputAt(imageField).Value())
	path, ok := m.svc.Library.Import(src)
	if !ok {
		m.flashErrorf("Could not read image %q", src)
		return
	}

	m.form.images = append(m.form.images, path)
	m.form.inputAt(imageField).Reset()
	m.flashSuccess("Image added: %s", path)
}

func (m App) submitProductForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.form.inputAt(nameField).Value())
	category := m.form.inputAt(categoryField).Value()
	description := m.form.desc.Value()
	rawPrice := m.form.inputAt(priceField).Value()

	if m.form.editingID != 0 {
		err := m.svc.Catalog.Edit(context.Background(), service.EditInput{
			ProductID:   m.form.editingID,
			ActorID:     m.session.ID,
			Name:        name,
			Category:    category,
			Description: description,
			Price:       domain.ParsePrice(rawPrice, m.form.oldPrice),
			Images:      m.form.images,
		})
		if err != nil {
			m.flashError(err)
			return m, nil
		}

		m.flashSuccess("Listing updated")
		m.openDetail(m.form.editingID, m.detail.from)
		return m, nil
	}

	out, err := m.svc.Catalog.Publish(context.Background(), service.PublishInput{
		SellerID:    m.session.ID,
		Name:        name,
		Category:    category,
		Description: description,
		Price:       domain.ParsePrice(rawPrice, 0),
		Images:      m.form.images,
	})
	if err != nil {
		m.flashError(err)
		return m, nil
	}

	m.flashSuccess("Listing published (#%d)", out.Product.ID)
	m.gotoBrowse()
	return m, nil
}

func (m App) viewProductForm() string {
	var b strings.Builder

	if m.form.editingID != 0 {
		b.WriteString(titleStyle.Render("Edit listing"))
	} else {
		b.WriteString(titleStyle.Render("Publish a listing"))
	}
	b.WriteString("\n")

	for focus, label := range productFormLabels {
		style := labelStyle
		if focus == m.form.focus {
			style = focusedLabelStyle
		}
		var field string
		if focus == descField {
			field = m.form.desc.View()
		} else {
			field = m.form.inputAt(focus).View()
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), " ", field))
		b.WriteString("\n")
	}

	if len(m.form.images) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Images"))
		b.WriteString(" " + mutedStyle.Render(strings.Join(m.form.images, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		FormatKey("tab", "next field") + " • " +
			FormatKey("enter", "add image / submit") + " • " +
			FormatKey("esc", "cancel"),
	))

	return boxStyle.Render(b.String())
}
