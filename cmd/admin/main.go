// admin is the back-office TUI. It talks to the database directly and
// acts as an admin account, so the same service-level authorization
// rules apply as on the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/iconnecthq/iconnect/cmd/admin/internal/view"
	"github.com/iconnecthq/iconnect/internal/account"
	accountStore "github.com/iconnecthq/iconnect/internal/account/store"
	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/config"
	"github.com/iconnecthq/iconnect/internal/database"
	"github.com/iconnecthq/iconnect/internal/lead"
	leadStore "github.com/iconnecthq/iconnect/internal/lead/store"
	"github.com/iconnecthq/iconnect/internal/ledger"
	ledgerStore "github.com/iconnecthq/iconnect/internal/ledger/store"
	"github.com/iconnecthq/iconnect/internal/notify"
	"github.com/iconnecthq/iconnect/internal/request"
	requestStore "github.com/iconnecthq/iconnect/internal/request/store"
)

type model struct {
	requestService *request.Service
	ledgerService  *ledger.Service
	accountService *account.Service
	leadService    *lead.Service

	currentView View

	requestsView view.RequestsModel
	usersView    view.UsersModel
	entriesView  view.EntriesModel
	leadsView    view.LeadsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRequests View = 1
	ViewUsers    View = 2
	ViewEntries  View = 3
	ViewLeads    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	accountSvc := account.NewService(accountStore.New(db))
	requestSvc := request.NewService(requestStore.New(db), notify.New(notify.LogMailer{}))
	ledgerSvc := ledger.NewService(ledgerStore.New(db), requestSvc)
	leadSvc := lead.NewService(leadStore.New(db))

	operator, err := resolveOperator(accountSvc)
	if err != nil {
		slog.Error("failed to resolve operator account", "error", err)
		os.Exit(1)
	}
	view.SetOperator(operator)

	return model{
		requestService: requestSvc,
		ledgerService:  ledgerSvc,
		accountService: accountSvc,
		leadService:    leadSvc,
		currentView:    ViewMenu,
		requestsView:   view.NewRequestsModel(requestSvc, ledgerSvc),
		usersView:      view.NewUsersModel(accountSvc, ledgerSvc),
		entriesView:    view.NewEntriesModel(ledgerSvc),
		leadsView:      view.NewLeadsModel(leadSvc),
	}
}

// resolveOperator picks the account the TUI acts as: OPERATOR_EMAIL when
// set, otherwise the first admin account. All ledger entries written from
// the TUI carry this account as the actor.
func resolveOperator(accounts *account.Service) (auth.Identity, error) {
	ctx := context.Background()

	if email := os.Getenv("OPERATOR_EMAIL"); email != "" {
		acct, err := accounts.GetByEmail(ctx, email)
		if err != nil {
			return auth.Identity{}, err
		}

		return auth.Identity{UID: acct.ID.String(), Email: acct.Email, Admin: acct.Admin}, nil
	}

	all, err := accounts.List(ctx)
	if err != nil {
		return auth.Identity{}, err
	}

	for _, acct := range all {
		if acct.Admin {
			return auth.Identity{UID: acct.ID.String(), Email: acct.Email, Admin: true}, nil
		}
	}

	return auth.Identity{}, fmt.Errorf("no admin account found; create one with 'iconnectctl set-admin'")
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRequests
				m.requestsView = view.NewRequestsModel(m.requestService, m.ledgerService)

				return m, m.requestsView.Init()
			case "2":
				m.currentView = ViewUsers
				m.usersView = view.NewUsersModel(m.accountService, m.ledgerService)

				return m, m.usersView.Init()
			case "3":
				m.currentView = ViewEntries
				m.entriesView = view.NewEntriesModel(m.ledgerService)

				return m, m.entriesView.Init()
			case "4":
				m.currentView = ViewLeads
				m.leadsView = view.NewLeadsModel(m.leadService)

				return m, m.leadsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRequests:
		var newModel tea.Model
		newModel, cmd = m.requestsView.Update(msg)
		m.requestsView = newModel.(view.RequestsModel)
	case ViewUsers:
		var newModel tea.Model
		newModel, cmd = m.usersView.Update(msg)
		m.usersView = newModel.(view.UsersModel)
	case ViewEntries:
		var newModel tea.Model
		newModel, cmd = m.entriesView.Update(msg)
		m.entriesView = newModel.(view.EntriesModel)
	case ViewLeads:
		var newModel tea.Model
		newModel, cmd = m.leadsView.Update(msg)
		m.leadsView = newModel.(view.LeadsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"iConnect Admin\n\n" +
				"1. Service Requests\n" +
				"2. Users\n" +
				"3. Ledger\n" +
				"4. Leads\n\n" +
				"q. Quit",
		)
	case ViewRequests:
		return m.requestsView.View()
	case ViewUsers:
		return m.usersView.View()
	case ViewEntries:
		return m.entriesView.View()
	case ViewLeads:
		return m.leadsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
