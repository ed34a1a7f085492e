package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type adminTab int

const (
	tabUsers adminTab = iota
	tabProducts
)

// adminModel holds the admin panel: one tab for accounts, one for listings.
type adminModel struct {
	tab      adminTab
	users    list.Model
	products list.Model
}

func newAdminModel() adminModel {
	users := list.New([]list.Item{}, userDelegate{}, 0, 0)
	users.Title = "Accounts"
	users.SetShowStatusBar(false)
	users.SetFilteringEnabled(false)
	users.Styles.Title = titleStyle

	products := list.New([]list.Item{}, productDelegate{}, 0, 0)
	products.Title = "Listings"
	products.SetShowStatusBar(false)
	products.SetFilteringEnabled(false)
	products.Styles.Title = titleStyle

	return adminModel{users: users, products: products}
}

func (a *adminModel) setSize(w, h int) {
	a.users.SetSize(w-4, h-12)
	a.products.SetSize(w-4, h-12)
}

func (m *App) gotoAdmin() {
	m.screen = screenAdmin
	m.reloadAdmin()
}

func (m *App) reloadAdmin() {
	ctx := context.Background()

	users, err := m.svc.Admin.ListUsers(ctx)
	if err != nil {
		m.flashError(err)
		return
	}
	userItems := make([]list.Item, len(users))
	for i, u := range users {
		userItems[i] = userItem{user: u}
	}
	m.admin.users.SetItems(userItems)

	products, err := m.svc.Admin.ListProducts(ctx)
	if err != nil {
		m.flashError(err)
		return
	}
	productItems := make([]list.Item, len(products))
	for i, p := range products {
		productItems[i] = productItem{product: p, seller: m.sellerName(p.SellerID)}
	}
	m.admin.products.SetItems(productItems)
}

func (m App) updateAdmin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			m.gotoBrowse()
			return m, nil

		case "tab":
			if m.admin.tab == tabUsers {
				m.admin.tab = tabProducts
			} else {
				m.admin.tab = tabUsers
			}
			return m, nil

		case "r":
			m.reloadAdmin()
			return m, nil

		case "enter":
			if m.admin.tab == tabProducts {
				if item, ok := m.admin.products.SelectedItem().(productItem); ok {
					m.openDetail(item.product.ID, screenAdmin)
				}
			}
			return m, nil

		case "d":
			if m.admin.tab == tabUsers {
				m.askDeleteUser()
			} else {
				m.askDeleteProduct()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.admin.tab == tabUsers {
		m.admin.users, cmd = m.admin.users.Update(msg)
	} else {
		m.admin.products, cmd = m.admin.products.Update(msg)
	}
	return m, cmd
}

func (m *App) askDeleteUser() {
	item, ok := m.admin.users.SelectedItem().(userItem)
	if !ok {
		return
	}

	target := item.user
	m.ask(
		"Delete account",
		fmt.Sprintf("Delete %s? Their listings vanish and favorites get cleaned up.", target.DisplayName()),
		func(a *App) {
			if err := a.svc.Admin.DeleteUser(context.Background(), target.ID); err != nil {
				a.flashError(err)
				return
			}
			a.flashSuccess("Account %s deleted", target.DisplayName())
			a.reloadAdmin()
		},
	)
}

func (m *App) askDeleteProduct() {
	item, ok := m.admin.products.SelectedItem().(productItem)
	if !ok {
		return
	}

	target := item.product
	m.ask(
		"Delete listing",
		fmt.Sprintf("Delete %q? It disappears from every favorites list.", target.Name),
		func(a *App) {
			if err := a.svc.Admin.DeleteProduct(context.Background(), target.ID); err != nil {
				a.flashError(err)
				return
			}
			a.flashSuccess("Listing %q deleted", target.Name)
			a.reloadAdmin()
		},
	)
}

func (m App) viewAdmin() string {
	var b strings.Builder

	usersTab := inactiveButtonStyle.Render("Accounts")
	productsTab := inactiveButtonStyle.Render("Listings")
	if m.admin.tab == tabUsers {
		usersTab = activeButtonStyle.Render("Accounts")
	} else {
		productsTab = activeButtonStyle.Render("Listings")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, usersTab, " ", productsTab))
	b.WriteString("\n\n")

	if m.admin.tab == tabUsers {
		b.WriteString(m.admin.users.View())
	} else {
		b.WriteString(m.admin.products.View())
	}
	b.WriteString("\n")

	help := FormatKey("tab", "switch") + " • " + FormatKey("d", "delete")
	if m.admin.tab == tabProducts {
		help += " • " + FormatKey("enter", "view")
	}
	help += " • " + FormatKey("r", "reload") + " • " + FormatKey("esc", "back")
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
