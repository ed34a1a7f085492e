// Package tui implements the interactive terminal interface of the
// secondhand marketplace. Every service call happens synchronously inside
// Update, so the documents are only ever touched from one goroutine.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/XiPingo/secondhand/internal/assets"
	"github.com/XiPingo/secondhand/internal/domain"
	"github.com/XiPingo/secondhand/internal/service"
)

// Screen identifies the active screen.
type Screen int

const (
	screenWelcome Screen = iota
	screenLogin
	screenRegister
	screenBrowse
	screenDetail
	screenPublish
	screenEdit
	screenProfile
	screenFavorites
	screenAdmin
)

// Services bundles everything the interface calls into.
type Services struct {
	Accounts  *service.AccountService
	Catalog   *service.CatalogService
	Favorites *service.FavoriteService
	Admin     *service.AdminService
	Library   *assets.Library
}

// App is the root Bubbletea model.
type App struct {
	svc    Services
	logger zerolog.Logger

	screen  Screen
	session *domain.User

	welcome   welcomeModel
	login     loginModel
	register  registerModel
	browse    browseModel
	detail    detailModel
	form      productForm
	profile   profileForm
	favorites favoritesModel
	admin     adminModel

	// confirm, when set, captures all input until the dialog resolves;
	// confirmAction runs on "Yes".
	confirm       *ConfirmationDialog
	confirmAction func(*App)

	flash    string
	flashErr bool
	width    int
	height   int
}

// New creates the root model.
func New(svc Services, logger zerolog.Logger) App {
	return App{
		svc:       svc,
		logger:    logger.With().Str("component", "tui").Logger(),
		screen:    screenWelcome,
		welcome:   newWelcomeModel(),
		login:     newLoginModel(),
		register:  newRegisterModel(),
		browse:    newBrowseModel(),
		favorites: newFavoritesModel(),
		admin:     newAdminModel(),
	}
}

// Init initializes the model
func (m App) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.browse.setSize(msg.Width, msg.Height)
		m.favorites.setSize(msg.Width, msg.Height)
		m.admin.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.confirm != nil {
			confirmed, done := m.confirm.Update(msg)
			if done {
				action := m.confirmAction
				m.confirm = nil
				m.confirmAction = nil
				if confirmed && action != nil {
					action(&m)
				}
			}
			return m, nil
		}

		// Any key press retires the previous flash line; handlers set a
		// fresh one when they have something to say.
		m.flash = ""
		m.flashErr = false
	}

	switch m.screen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenBrowse:
		return m.updateBrowse(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenPublish, screenEdit:
		return m.updateProductForm(msg)
	case screenProfile:
		return m.updateProfile(msg)
	case screenFavorites:
		return m.updateFavorites(msg)
	case screenAdmin:
		return m.updateAdmin(msg)
	}

	return m, nil
}

// View renders the UI
func (m App) View() string {
	if m.confirm != nil {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			m.confirm.View(),
		)
	}

	var body string
	switch m.screen {
	case screenWelcome:
		body = m.viewWelcome()
	case screenLogin:
		body = m.viewLogin()
	case screenRegister:
		body = m.viewRegister()
	case screenBrowse:
		body = m.viewBrowse()
	case screenDetail:
		body = m.viewDetail()
	case screenPublish, screenEdit:
		body = m.viewProductForm()
	case screenProfile:
		body = m.viewProfile()
	case screenFavorites:
		body = m.viewFavorites()
	case screenAdmin:
		body = m.viewAdmin()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		body,
		m.flashLine(),
	)
}

func (m App) header() string {
	title := headerStyle.Render("Secondhand Market")
	if m.session == nil {
		return title
	}

	who := m.session.DisplayName()
	if m.session.IsAdmin {
		who += " " + adminBadgeStyle.Render("[admin]")
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, title, sessionStyle.Render(who))
}

func (m App) flashLine() string {
	if m.flash == "" {
		return ""
	}
	if m.flashErr {
		return dangerStyle.Render(m.flash)
	}
	return successStyle.Render(m.flash)
}

func (m *App) flashSuccess(format string, args ...any) {
	m.flash = fmt.Sprintf(format, args...)
	m.flashErr = false
}

func (m *App) flashError(err error) {
	m.flashErrorf("%s", err)
}

func (m *App) flashErrorf(format string, args ...any) {
	m.flash = fmt.Sprintf(format, args...)
	m.flashErr = true
}

// ask arms the confirmation dialog; action runs when the user answers yes.
func (m *App) ask(title, message string, action func(*App)) {
	m.confirm = NewConfirmationDialog(title, message)
	m.confirmAction = action
}

// logout drops the session and returns to the welcome screen.
func (m *App) logout() {
	if m.session != nil {
		m.logger.Info().Int("user_id", m.session.ID).Msg("logged out")
	}
	m.session = nil
	m.screen = screenWelcome
	m.welcome = newWelcomeModel()
}

// sellerName resolves a seller for display, falling back to an id label
// when the account no longer exists.
func (m *App) sellerName(sellerID int) string {
	user, err := m.svc.Accounts.Get(context.Background(), sellerID)
	if err != nil {
		return fmt.Sprintf("ID:%d", sellerID)
	}
	return user.DisplayName()
}

// Run starts the interactive interface and blocks until the user quits.
func Run(svc Services, logger zerolog.Logger) error {
	p := tea.NewProgram(New(svc, logger))
	_, err := p.Run()
	return err
}
