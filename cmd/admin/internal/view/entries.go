package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iconnecthq/iconnect/internal/ledger"
)

const entriesPageSize = 100

type EntriesModel struct {
	CommonModel
	ledgerService *ledger.Service

	table   table.Model
	entries []*ledger.Entry

	actionFilterIdx int
	filter          ledger.EntryFilter

	loading bool
	err     error
}

func NewEntriesModel(ledgerSvc *ledger.Service) EntriesModel {
	columns := []table.Column{
		{Title: "Time", Width: 18},
		{Title: "Action", Width: 16},
		{Title: "Actor", Width: 10},
		{Title: "Subject", Width: 10},
		{Title: "Amount", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return EntriesModel{
		ledgerService: ledgerSvc,
		table:         t,
		filter:        ledger.EntryFilter{Limit: entriesPageSize},
	}
}

func (m EntriesModel) Title() string { return "Ledger" }
func (m EntriesModel) ShortHelp() string {
	return "Esc: back | a: action filter | r: refresh"
}

func (m EntriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			m.actionFilterIdx = (m.actionFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m EntriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger entries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	actionLabels := []string{"All", "Approve", "Reject", "Adjust", "Purchase"}

	header := fmt.Sprintf("Filter: [a] Action: %s", activeStyle(actionLabels[m.actionFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *EntriesModel) applyFilter() {
	switch m.actionFilterIdx {
	case 1:
		m.filter.Action = new(ledger.ActionApproveRequest)
	case 2:
		m.filter.Action = new(ledger.ActionRejectRequest)
	case 3:
		m.filter.Action = new(ledger.ActionAdjustCredits)
	case 4:
		m.filter.Action = new(ledger.ActionPurchaseLead)
	default:
		m.filter.Action = nil
	}
}

func (m *EntriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		amount := ""
		if e.Amount != nil {
			amount = strconv.FormatInt(*e.Amount, 10)
		}
		rows = append(rows, table.Row{
			FormatTime(e.CreatedAt),
			string(e.Action),
			ShortID(e.ActorID.String()),
			ShortID(e.SubjectID.String()),
			amount,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadEntriesMsg struct {
	entries []*ledger.Entry
	err     error
}

func (m EntriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.ledgerService.ListEntries(ctx, m.filter)
		return loadEntriesMsg{entries: entries, err: err}
	}
}
