package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/ledger"
	"github.com/iconnecthq/iconnect/internal/request"
)

type RequestsModel struct {
	CommonModel
	requestService *request.Service
	ledgerService  *ledger.Service

	table    table.Model
	requests []*request.Request

	statusFilterIdx int
	filter          request.ListFilter

	loading bool
	err     error
	status  string
}

func NewRequestsModel(requestSvc *request.Service, ledgerSvc *ledger.Service) RequestsModel {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Created", Width: 18},
		{Title: "Customer", Width: 20},
		{Title: "Service", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Responses", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return RequestsModel{
		requestService: requestSvc,
		ledgerService:  ledgerSvc,
		table:          t,
		filter:         request.ListFilter{},
	}
}

func (m RequestsModel) Title() string { return "Service Requests" }
func (m RequestsModel) ShortHelp() string {
	return "Esc: back | a: approve | x: reject | c: close | s: status filter | r: refresh"
}

func (m RequestsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRequestsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.requests = msg.requests
		m.refreshTable()
		return m, nil

	case decisionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = msg.result
		return m, m.loadCmd()

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
			return m, m.decideCmd(request.StatusApproved)
		case "x":
			return m, m.decideCmd(request.StatusRejected)
		case "c":
			return m, m.closeCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RequestsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading requests...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Approved", "Rejected", "Closed"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RequestsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		m.filter.Status = new(request.StatusPending)
	case 2:
		m.filter.Status = new(request.StatusApproved)
	case 3:
		m.filter.Status = new(request.StatusRejected)
	case 4:
		m.filter.Status = new(request.StatusClosed)
	default:
		m.filter.Status = nil
	}
}

func (m *RequestsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.requests))
	for _, req := range m.requests {
		rows = append(rows, table.Row{
			ShortID(req.ID.String()),
			FormatTime(req.CreatedAt),
			req.CustomerName,
			req.ServiceName,
			string(req.Status),
			strconv.Itoa(req.ProviderResponses),
		})
	}
	m.table.SetRows(rows)
}

func (m RequestsModel) selected() (uuid.UUID, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.requests) {
		return uuid.Nil, false
	}

	return m.requests[idx].ID, true
}

// Messages

type loadRequestsMsg struct {
	requests []*request.Request
	err      error
}

func (m RequestsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		requests, err := m.requestService.List(ctx, m.filter)
		return loadRequestsMsg{requests: requests, err: err}
	}
}

type decisionMsg struct {
	result string
	err    error
}

// decideCmd approves or rejects through the ledger so the decision is
// recorded in the audit trail.
func (m RequestsModel) decideCmd(next request.Status) tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			result string
			err    error
		)
		if next == request.StatusApproved {
			result, err = m.ledgerService.ApproveRequest(ctx, id)
		} else {
			result, err = m.ledgerService.RejectRequest(ctx, id)
		}

		return decisionMsg{result: result, err: err}
	}
}

func (m RequestsModel) closeCmd() tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		req, err := m.requestService.Transition(ctx, id, request.StatusClosed)
		if err != nil {
			return decisionMsg{err: err}
		}

		return decisionMsg{result: fmt.Sprintf("Request %s closed.", req.ID)}
	}
}
