package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// favoritesModel holds the favorites screen.
type favoritesModel struct {
	list list.Model
}

func newFavoritesModel() favoritesModel {
	l := list.New([]list.Item{}, productDelegate{}, 0, 0)
	l.Title = "My Favorites"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return favoritesModel{list: l}
}

func (f *favoritesModel) setSize(w, h int) {
	f.list.SetSize(w-4, h-10)
}

func (m *App) gotoFavorites() {
	m.screen = screenFavorites
	m.reloadFavorites()
}

func (m *App) reloadFavorites() {
	products, err := m.svc.Favorites.List(context.Background(), m.session.ID)
	if err != nil {
		m.flashError(err)
		return
	}

	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p, seller: m.sellerName(p.SellerID)}
	}
	m.favorites.list.SetItems(items)
}

func (m App) updateFavorites(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			m.gotoBrowse()
			return m, nil

		case "enter":
			if item, ok := m.favorites.list.SelectedItem().(productItem); ok {
				m.openDetail(item.product.ID, screenFavorites)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.favorites.list, cmd = m.favorites.list.Update(msg)
	return m, cmd
}

func (m App) viewFavorites() string {
	var b strings.Builder

	b.WriteString(m.favorites.list.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		FormatKey("enter", "view") + " • " + FormatKey("esc", "back"),
	))

	return b.String()
}
