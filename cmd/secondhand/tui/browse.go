package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/XiPingo/secondhand/internal/domain"
)

// browseModel holds the main listing screen: the product list plus the
// search box. Searching goes through the catalog service, so the list's
// own fuzzy filtering stays off.
type browseModel struct {
	list      list.Model
	search    textinput.Model
	searching bool
	keyword   string
}

func newBrowseModel() browseModel {
	l := list.New([]list.Item{}, productDelegate{}, 0, 0)
	l.Title = "Listings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return browseModel{
		list:   l,
		search: newInput("search name or description", 64),
	}
}

func (b *browseModel) setSize(w, h int) {
	b.list.SetSize(w-4, h-12)
}

// gotoBrowse resets the search and shows the listing screen.
func (m *App) gotoBrowse() {
	m.screen = screenBrowse
	m.browse.keyword = ""
	m.browse.searching = false
	m.browse.search.Blur()
	m.browse.search.SetValue("")
	m.reloadBrowse()
}

// reloadBrowse refills the list, newest first, or filtered by the active
// keyword in document order.
func (m *App) reloadBrowse() {
	var (
		products []*domain.Product
		err      error
	)
	if m.browse.keyword == "" {
		products, err = m.svc.Catalog.Browse(context.Background())
	} else {
		products, err = m.svc.Catalog.Search(context.Background(), m.browse.keyword)
	}
	if err != nil {
		m.flashError(err)
		return
	}

	items := make([]list.Item, len(products))
	for i, p := range products {
		items[i] = productItem{product: p, seller: m.sellerName(p.SellerID)}
	}
	m.browse.list.SetItems(items)
}

func (m App) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.browse.searching {
			switch key.String() {
			case "enter":
				m.browse.keyword = strings.TrimSpace(m.browse.search.Value())
				m.browse.searching = false
				m.browse.search.Blur()
				m.reloadBrowse()
				return m, nil
			case "esc":
				m.browse.searching = false
				m.browse.search.Blur()
				m.browse.search.SetValue("")
				if m.browse.keyword != "" {
					m.browse.keyword = ""
					m.reloadBrowse()
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.browse.search, cmd = m.browse.search.Update(msg)
			return m, cmd
		}

		switch key.String() {
		case "q":
			return m, tea.Quit

		case "/":
			m.browse.searching = true
			return m, m.browse.search.Focus()

		case "enter":
			if item, ok := m.browse.list.SelectedItem().(productItem); ok {
				m.openDetail(item.product.ID, screenBrowse)
			}
			return m, nil

		case "n":
			m.startPublish()
			return m, m.form.focusField(nameField)

		case "f":
			m.gotoFavorites()
			return m, nil

		case "p":
			m.startProfile()
			return m, setFocus(m.profile.inputs, 0)

		case "a":
			if m.session != nil && m.session.IsAdmin {
				m.gotoAdmin()
			}
			return m, nil

		case "r":
			m.reloadBrowse()
			return m, nil

		case "L":
			m.logout()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.browse.list, cmd = m.browse.list.Update(msg)
	return m, cmd
}

func (m App) viewBrowse() string {
	var b strings.Builder

	if m.browse.searching || m.browse.keyword != "" {
		b.WriteString(infoStyle.Render("Search: "))
		b.WriteString(m.browse.search.View())
		b.WriteString("\n")
	}

	b.WriteString(m.browse.list.View())
	b.WriteString("\n")

	help := FormatKey("enter", "view") + " • " +
		FormatKey("/", "search") + " • " +
		FormatKey("n", "sell") + " • " +
		FormatKey("f", "favorites") + " • " +
		FormatKey("p", "profile") + " • "
	if m.session != nil && m.session.IsAdmin {
		help += FormatKey("a", "admin") + " • "
	}
	help += FormatKey("L", "log out") + " • " + FormatKey("q", "quit")
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
