package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/iconnecthq/iconnect/internal/account"
	"github.com/iconnecthq/iconnect/internal/ledger"
)

type usersState int

const (
	usersStateBrowse usersState = iota
	usersStateAdjust
)

type UsersModel struct {
	CommonModel
	accountService *account.Service
	ledgerService  *ledger.Service

	state    usersState
	table    table.Model
	accounts []*account.Account
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form binding
	formAmount string
}

func NewUsersModel(accountSvc *account.Service, ledgerSvc *ledger.Service) UsersModel {
	columns := []table.Column{
		{Title: "Email", Width: 30},
		{Title: "Name", Width: 20},
		{Title: "Role", Width: 8},
		{Title: "Credits", Width: 8},
		{Title: "Admin", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return UsersModel{
		accountService: accountSvc,
		ledgerService:  ledgerSvc,
		table:          t,
	}
}

func (m UsersModel) Title() string { return "Users" }
func (m UsersModel) ShortHelp() string {
	if m.state == usersStateAdjust {
		return "Enter: apply | Esc: cancel"
	}
	return "Esc: back | c: adjust credits | r: refresh"
}

func (m UsersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUsersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.accounts = msg.accounts
		m.refreshTable()
		return m, nil

	case adjustMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.result
		}
		m.state = usersStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case usersStateBrowse:
		return m.updateBrowse(msg)
	case usersStateAdjust:
		return m.updateAdjust(msg)
	}

	return m, nil
}

func (m UsersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			return m.enterAdjustMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m UsersModel) enterAdjustMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return m, nil
	}

	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Description("Positive grants, negative deducts").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
						return fmt.Errorf("amount must be an integer")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = usersStateAdjust
	m.table.Blur()
	return m, m.form.Init()
}

func (m UsersModel) updateAdjust(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = usersStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.adjustCmd()
}

func (m UsersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading users...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == usersStateAdjust && m.form != nil {
		idx := m.table.Cursor()
		email := ""
		if idx >= 0 && idx < len(m.accounts) {
			email = m.accounts[idx].Email
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Adjust Credits\n\nUser: %s\n\n%s", email, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *UsersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.accounts))
	for _, acct := range m.accounts {
		admin := ""
		if acct.Admin {
			admin = "yes"
		}
		rows = append(rows, table.Row{
			acct.Email,
			acct.Name,
			acct.Role,
			strconv.FormatInt(acct.Credits, 10),
			admin,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadUsersMsg struct {
	accounts []*account.Account
	err      error
}

func (m UsersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx)
		return loadUsersMsg{accounts: accounts, err: err}
	}
}

type adjustMsg struct {
	result string
	err    error
}

func (m UsersModel) adjustCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return nil
	}

	userID := m.accounts[idx].ID
	amount, err := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	if err != nil {
		return func() tea.Msg { return adjustMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.ledgerService.AdjustCredits(ctx, userID, amount)
		return adjustMsg{result: result, err: err}
	}
}
