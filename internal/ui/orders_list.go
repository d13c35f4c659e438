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
)

// OrderListScreen is the order overview: searchable table with add,
// edit and delete.
type OrderListScreen struct {
	styles Styles
	post   func(func())
	onAdd  func()
	onEdit func(id int64)

	search  textinput.Model
	table   table.Model
	confirm confirmDialog

	orders  []model.Order
	loading bool
	status  string
	errText string
	width   int
	height  int

	loadRequested   event.Signal[struct{}]
	searchChanged   event.Signal[string]
	deleteRequested event.Signal[int64]
	deleteConfirmed event.Signal[bool]
}

var _ presenter.OrderListView = (*OrderListScreen)(nil)

func NewOrderListScreen(styles Styles, post func(func()), onAdd func(), onEdit func(id int64)) *OrderListScreen {
	search := textinput.New()
	search.Placeholder = "search number, customer, status or notes"
	search.Prompt = "/ "
	search.CharLimit = 100

	t := table.New(
		table.WithColumns(orderColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.tableStyles())

	return &OrderListScreen{
		styles:  styles,
		post:    post,
		onAdd:   onAdd,
		onEdit:  onEdit,
		search:  search,
		table:   t,
		confirm: confirmDialog{styles: styles},
	}
}

func orderColumns(width int) []table.Column {
	flex := width - 6 - 16 - 12 - 12 - 12
	if flex < 16 {
		flex = 16
	}
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Number", Width: 16},
		{Title: "Customer", Width: flex},
		{Title: "Date", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Status", Width: 12},
	}
}

// EmitLoad asks the presenter for a fresh list.
func (s *OrderListScreen) EmitLoad() { s.loadRequested.Emit(struct{}{}) }

func (s *OrderListScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.search.Width = width - 8
	s.table.SetColumns(orderColumns(width - 4))
	rows := height - 6
	if rows < 3 {
		rows = 3
	}
	s.table.SetHeight(rows)
}

func (s *OrderListScreen) Loading() bool { return s.loading }

func (s *OrderListScreen) capturing() bool {
	return s.search.Focused() || s.confirm.Visible()
}

func (s *OrderListScreen) selectedID() int64 {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.orders) {
		return 0
	}
	return s.orders[i].ID
}

func (s *OrderListScreen) Update(msg tea.Msg) tea.Cmd {
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
	case "r":
		s.EmitLoad()
	default:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	return nil
}

func (s *OrderListScreen) View() string {
	if s.confirm.Visible() {
		return s.confirm.View(s.width, s.height)
	}

	var b strings.Builder
	b.WriteString(s.search.View())
	b.WriteString("\n\n")
	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(s.statusLine())
	return b.String()
}

func (s *OrderListScreen) statusLine() string {
	if s.errText != "" {
		return s.styles.Error.Render(s.errText)
	}
	return s.styles.Status.Render(s.status)
}

func (s *OrderListScreen) helpLine() string {
	return "/ search · a add · e edit · d delete · r reload · tab customers · q quit"
}

// ---- view interface ----

func (s *OrderListScreen) Post(fn func()) { s.post(fn) }

func (s *OrderListScreen) SetLoading(loading bool) { s.loading = loading }

func (s *OrderListScreen) SetOrders(orders []model.Order) {
	s.orders = orders

	rows := make([]table.Row, len(orders))
	for i, o := range orders {
		rows[i] = table.Row{
			strconv.FormatInt(o.ID, 10),
			o.Number,
			o.CustomerName,
			o.OrderDate.Format("2006-01-02"),
			o.Total.StringFixed(2),
			o.Status.String(),
		}
	}
	s.table.SetRows(rows)
	if s.table.Cursor() >= len(rows) && len(rows) > 0 {
		s.table.SetCursor(len(rows) - 1)
	}
}

func (s *OrderListScreen) SetStatus(text string) {
	s.status = text
	s.errText = ""
}

func (s *OrderListScreen) ShowError(message string) { s.errText = message }

func (s *OrderListScreen) AskConfirm(prompt string) { s.confirm.Show(prompt) }

func (s *OrderListScreen) LoadRequested() *event.Signal[struct{}] { return &s.loadRequested }

func (s *OrderListScreen) SearchChanged() *event.Signal[string] { return &s.searchChanged }

func (s *OrderListScreen) DeleteRequested() *event.Signal[int64] { return &s.deleteRequested }

func (s *OrderListScreen) DeleteConfirmed() *event.Signal[bool] { return &s.deleteConfirmed }
