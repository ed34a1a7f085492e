package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/XiPingo/secondhand/internal/service"
)

// detailModel holds the product detail screen.
type detailModel struct {
	productID  int
	from       Screen
	out        *service.GetOutput
	comment    textinput.Model
	commenting bool
}

// openDetail loads a listing and switches to the detail screen.
func (m *App) openDetail(productID int, from Screen) {
	out, err := m.svc.Catalog.Get(context.Background(), productID)
	if err != nil {
		m.flashError(err)
		return
	}

	m.detail = detailModel{
		productID: productID,
		from:      from,
		out:       out,
		comment:   newInput("write a comment", 200),
	}
	m.screen = screenDetail
}

// refreshDetail re-reads the listing after a mutation.
func (m *App) refreshDetail() {
	out, err := m.svc.Catalog.Get(context.Background(), m.detail.productID)
	if err != nil {
		// Deleted underneath us; fall back to the list we came from.
		m.closeDetail()
		return
	}
	m.detail.out = out
}

// closeDetail returns to the screen the listing was opened from.
func (m *App) closeDetail() {
	switch m.detail.from {
	case screenFavorites:
		m.gotoFavorites()
	case screenAdmin:
		m.gotoAdmin()
	default:
		m.screen = screenBrowse
		m.reloadBrowse()
	}
}

func (m App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	product := m.detail.out.Product

	if key, ok := msg.(tea.KeyMsg); ok {
		if m.detail.commenting {
			switch key.String() {
			case "enter":
				return m.submitComment()
			case "esc":
				m.detail.commenting = false
				m.detail.comment.Blur()
				m.detail.comment.Reset()
				return m, nil
			}

			var cmd tea.Cmd
			m.detail.comment, cmd = m.detail.comment.Update(msg)
			return m, cmd
		}

		switch key.String() {
		case "esc", "q":
			m.closeDetail()
			return m, nil

		case "f":
			on, err := m.svc.Favorites.Toggle(context.Background(), m.session.ID, product.ID)
			if err != nil {
				m.flashError(err)
				return m, nil
			}
			if on {
				m.flashSuccess("Added to favorites")
			} else {
				m.flashSuccess("Removed from favorites")
			}
			return m, nil

		case "c":
			m.detail.commenting = true
			return m, m.detail.comment.Focus()

		case "e":
			if m.session.ID == product.SellerID {
				m.startEdit(product)
				return m, m.form.focusField(nameField)
			}
			return m, nil

		case "d":
			if m.session.ID != product.SellerID && !m.session.IsAdmin {
				return m, nil
			}
			m.ask(
				"Delete listing",
				fmt.Sprintf("Delete %q? It disappears from every favorites list.", product.Name),
				func(a *App) {
					err := a.svc.Catalog.Delete(context.Background(), service.DeleteProductInput{
						ProductID: a.detail.productID,
						ActorID:   a.session.ID,
					})
					if err != nil {
						a.flashError(err)
						return
					}
					a.flashSuccess("Listing deleted")
					a.closeDetail()
				},
			)
			return m, nil
		}
	}

	return m, nil
}

func (m App) submitComment() (tea.Model, tea.Cmd) {
	err := m.svc.Catalog.AddComment(context.Background(), service.AddCommentInput{
		ProductID: m.detail.productID,
		AuthorID:  m.session.ID,
		Text:      strings.TrimSpace(m.detail.comment.Value()),
	})
	if err != nil {
		m.flashError(err)
		return m, nil
	}

	m.detail.commenting = false
	m.detail.comment.Blur()
	m.detail.comment.Reset()
	m.refreshDetail()
	return m, nil
}

func (m App) viewDetail() string {
	product := m.detail.out.Product

	var b strings.Builder
	b.WriteString(titleStyle.Render(product.Name))
	b.WriteString("\n")
	b.WriteString(FormatPrice(product.Price))
	if product.Category != "" {
		b.WriteString("  " + mutedStyle.Render(product.Category))
	}
	b.WriteString("\n\n")

	if product.Description != "" {
		b.WriteString(product.Description)
		b.WriteString("\n\n")
	}

	seller := fmt.Sprintf("ID:%d", product.SellerID)
	if m.detail.out.Seller != nil {
		seller = m.detail.out.Seller.DisplayName()
	}
	b.WriteString(labelStyle.Render("Seller"))
	b.WriteString(" " + seller + "\n")

	if len(product.Images) > 0 {
		b.WriteString(labelStyle.Render("Images"))
		b.WriteString(" " + mutedStyle.Render(strings.Join(product.Images, ", ")) + "\n")
	}

	b.WriteString(labelStyle.Render("Favorite"))
	if m.session.IsFavorite(product.ID) {
		b.WriteString(" " + successStyle.Render("★ yes"))
	} else {
		b.WriteString(" " + mutedStyle.Render("☆ no"))
	}
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Comments (%d)", len(product.Comments))))
	b.WriteString("\n")
	if len(product.Comments) == 0 {
		b.WriteString(mutedStyle.Render("No comments yet."))
		b.WriteString("\n")
	}
	for _, c := range product.Comments {
		author := c.Nickname
		if author == "" {
			author = fmt.Sprintf("user #%d", c.UserID)
		}
		b.WriteString(helpKeyStyle.Render(author) + mutedStyle.Render(": ") + c.Text)
		b.WriteString("\n")
	}

	if m.detail.commenting {
		b.WriteString("\n" + m.detail.comment.View() + "\n")
		b.WriteString(helpStyle.Render(FormatKey("enter", "post") + " • " + FormatKey("esc", "cancel")))
		return boxStyle.Render(b.String())
	}

	help := FormatKey("f", "favorite") + " • " + FormatKey("c", "comment")
	if m.session.ID == product.SellerID {
		help += " • " + FormatKey("e", "edit")
	}
	if m.session.ID == product.SellerID || m.session.IsAdmin {
		help += " • " + FormatKey("d", "delete")
	}
	help += " • " + FormatKey("esc", "back")
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))

	return boxStyle.Render(b.String())
}
