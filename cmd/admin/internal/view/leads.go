package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/iconnecthq/iconnect/internal/lead"
)

type leadsState int

const (
	leadsStateBrowse leadsState = iota
	leadsStateCreate
)

type LeadsModel struct {
	CommonModel
	leadService *lead.Service

	state leadsState
	table table.Model
	leads []*lead.Lead
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formTitle   string
	formService string
	formEmail   string
	formCost    string
}

func NewLeadsModel(leadSvc *lead.Service) LeadsModel {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Title", Width: 28},
		{Title: "Service", Width: 18},
		{Title: "Cost", Width: 6},
		{Title: "Created", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return LeadsModel{
		leadService: leadSvc,
		table:       t,
	}
}

func (m LeadsModel) Title() string { return "Leads" }
func (m LeadsModel) ShortHelp() string {
	if m.state == leadsStateCreate {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: new lead | r: refresh"
}

func (m LeadsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LeadsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLeadsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.leads = msg.leads
		m.refreshTable()
		return m, nil

	case leadSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Lead %s created.", msg.id)
		}
		m.state = leadsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case leadsStateBrowse:
		return m.updateBrowse(msg)
	case leadsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m LeadsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m LeadsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formTitle = ""
	m.formService = ""
	m.formEmail = ""
	m.formCost = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("service").
				Title("Service").
				Value(&m.formService),

			huh.NewInput().
				Key("contact_email").
				Title("Contact Email").
				Value(&m.formEmail),

			huh.NewInput().
				Key("cost").
				Title("Cost (credits)").
				Value(&m.formCost).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("cost must be a positive integer")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = leadsStateCreate
	m.table.Blur()
	return m, m.form.Init()
}

func (m LeadsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = leadsStateBrowse
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

	return m, m.saveCmd()
}

func (m LeadsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading leads...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == leadsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Lead\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LeadsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.leads))
	for _, l := range m.leads {
		rows = append(rows, table.Row{
			ShortID(l.ID.String()),
			l.Title,
			l.ServiceName,
			strconv.FormatInt(l.Cost, 10),
			FormatTime(l.CreatedAt),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadLeadsMsg struct {
	leads []*lead.Lead
	err   error
}

func (m LeadsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		leads, err := m.leadService.List(ctx)
		return loadLeadsMsg{leads: leads, err: err}
	}
}

type leadSavedMsg struct {
	id  string
	err error
}

func (m LeadsModel) saveCmd() tea.Cmd {
	title := m.formTitle
	service := m.formService
	email := m.formEmail
	cost, err := strconv.ParseInt(strings.TrimSpace(m.formCost), 10, 64)
	if err != nil {
		return func() tea.Msg { return leadSavedMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		l, err := m.leadService.Create(ctx, lead.CreateParams{
			Title:        title,
			ServiceName:  service,
			ContactEmail: email,
			Cost:         cost,
		})
		if err != nil {
			return leadSavedMsg{err: err}
		}

		return leadSavedMsg{id: l.ID.String()}
	}
}
