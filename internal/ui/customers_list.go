package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmdesk/internal/event"
	"crmdesk/internal/model"
	"crmdesk/internal/presenter"
	"crmdesk/internal/util"
)

// CustomerListScreen is the customer overview: searchable table with
// add, edit, delete and an active-only filter.
type CustomerListScreen struct {
	styles Styles
	post   func(func())
	onAdd  func()
	onEdit func(id int64)

	search  textinput.Model
	table   table.Model
	confirm confirmDialog

	customers  []model.Customer
	activeOnly bool
	loading    bool
	status     string
	errText    string
	width      int
	height     int

	loadRequested   event.Signal[struct{}]
	searchChanged   event.Signal[string]
	activeToggled   event.Signal[bool]
	deleteRequested event.Signal[int64]
	deleteConfirmed event.Signal[bool]
}

var _ presenter.CustomerListView = (*CustomerListScreen)(nil)

func NewCustomerListScreen(styles Styles, post func(func()), onAdd func(), onEdit func(id int64)) *CustomerListScreen {
	search := textinput.New()
	search.Placeholder = "search name, email, phone, city or country"
	search.Prompt = "/ "
	search.CharLimit = 100

	t := table.New(
		table.WithColumns(customerColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.tableStyles())

	return &CustomerListScreen{
		styles:  styles,
		post:    post,
		onAdd:   onAdd,
		onEdit:  onEdit,
		search:  search,
		table:   t,
		confirm: confirmDialog{styles: styles},
	}
}

func customerColumns(width int) []table.Column {
	// Name and email flex, the rest stay fixed.
	flex := width - 6 - 14 - 10 - 8 - 10
	if flex < 20 {
		flex = 20
	}
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: flex / 2},
		{Title: "Email", Width: flex - flex/2},
		{Title: "Phone", Width: 14},
		{Title: "City", Width: 10},
		{Title: "Active", Width: 8},
	}
}

// EmitLoad asks the presenter for a fresh list.
func (s *CustomerListScreen) EmitLoad() { s.loadRequested.Emit(struct{}{}) }

func (s *CustomerListScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.search.Width = width - 8
	s.table.SetColumns(customerColumns(width - 4))
	rows := height - 6
	if rows < 3 {
		rows = 3
	}
	s.table.SetHeight(rows)
}

func (s *CustomerListScreen) Loading() bool { return s.loading }

// capturing reports whether this screen is consuming raw text input, in
// which case global shortcuts stay inactive.
func (s *CustomerListScreen) capturing() bool {
	return s.search.Focused() || s.confirm.Visible()
}

func (s *CustomerListScreen) selectedID() int64 {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.customers) {
		return 0
	}
	return s.customers[i].ID
}

func (s *CustomerListScreen) Update(msg tea.Msg) tea.Cmd {
	if s.confirm.Visible() {
		if done, confirmed := s.confirm.Update(msg); done {
			s.deleteConfirmed.Emit(confirmed)
		}
		return nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if s.search.Focused() {
		switch key.String() {
		case "esc", "enter":
			s.search.Blur()
			return nil
		default:
			before := s.search.Value()
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			if s.search.Value() != before {
				s.searchChanged.Emit(s.search.Value())
			}
			return cmd
		}
	}

	switch key.String() {
	case "/":
		s.search.Focus()
		return textinput.Blink
	case "a":
		s.onAdd()
	case "enter", "e":
		if id := s.selectedID(); id > 0 {
			s.onEdit(id)
		}
	case "d", "delete":
		s.deleteRequested.Emit(s.selectedID())
	case "f":
		s.activeOnly = !s.activeOnly
		s.activeToggled.Emit(s.activeOnly)
	case "r":
		s.EmitLoad()
	default:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	return nil
}

func (s *CustomerListScreen) View() string {
	if s.confirm.Visible() {
		return s.confirm.View(s.width, s.height)
	}

	var b strings.Builder
	b.WriteString(s.search.View())
	b.WriteString("\n")

	filter := "all customers"
	if s.activeOnly {
		filter = "active only"
	}
	b.WriteString(s.styles.Muted.Render("showing: " + filter))
	b.WriteString("\n")
	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(s.statusLine())
	return b.String()
}

func (s *CustomerListScreen) statusLine() string {
	if s.errText != "" {
		return s.styles.Error.Render(s.errText)
	}
	return s.styles.Status.Render(s.status)
}

func (s *CustomerListScreen) helpLine() string {
	return "/ search · a add · e edit · d delete · f active filter · r reload · tab orders · q quit"
}

// ---- view interface ----

func (s *CustomerListScreen) Post(fn func()) { s.post(fn) }

func (s *CustomerListScreen) SetLoading(loading bool) { s.loading = loading }

func (s *CustomerListScreen) SetCustomers(customers []model.Customer) {
	s.customers = customers

	rows := make([]table.Row, len(customers))
	for i, c := range customers {
		active := "no"
		if c.Active {
			active = "yes"
		}
		rows[i] = table.Row{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			util.Deref(c.Phone),
			util.Deref(c.City),
			active,
		}
	}
	s.table.SetRows(rows)
	if s.table.Cursor() >= len(rows) && len(rows) > 0 {
		s.table.SetCursor(len(rows) - 1)
	}
}

func (s *CustomerListScreen) SetStatus(text string) {
	s.status = text
	s.errText = ""
}

func (s *CustomerListScreen) ShowError(message string) { s.errText = message }

func (s *CustomerListScreen) AskConfirm(prompt string) { s.confirm.Show(prompt) }

func (s *CustomerListScreen) LoadRequested() *event.Signal[struct{}] { return &s.loadRequested }

func (s *CustomerListScreen) SearchChanged() *event.Signal[string] { return &s.searchChanged }

func (s *CustomerListScreen) ActiveOnlyToggled() *event.Signal[bool] { return &s.activeToggled }

func (s *CustomerListScreen) DeleteRequested() *event.Signal[int64] { return &s.deleteRequested }

func (s *CustomerListScreen) DeleteConfirmed() *event.Signal[bool] { return &s.deleteConfirmed }
