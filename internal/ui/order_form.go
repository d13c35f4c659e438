package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmdesk/internal/event"
	"crmdesk/internal/model"
	"crmdesk/internal/presenter"
)

// Order form focus slots, in traversal order.
const (
	ofNumber = iota
	ofCustomer
	ofDate
	ofTotal
	ofStatus
	ofNotes
	ofSlotCount
)

// OrderFormScreen is the add/edit order form. Customer and status are
// pickers cycled with the arrow keys; everything else is free text
// handed to the presenter raw.
type OrderFormScreen struct {
	styles  Styles
	post    func(func())
	onClose func(saved bool)

	number textinput.Model
	date   textinput.Model
	total  textinput.Model
	notes  textinput.Model

	customers   []model.Customer
	customerIdx int
	statuses    []model.OrderStatus
	statusIdx   int

	focus     int
	editMode  bool
	fieldErrs map[string]string
	banner    string
	loading   bool
	closed    bool
	width     int
	height    int

	loadRequested   event.Signal[struct{}]
	saveRequested   event.Signal[struct{}]
	cancelRequested event.Signal[struct{}]
}

var _ presenter.OrderFormView = (*OrderFormScreen)(nil)

func NewOrderFormScreen(styles Styles, post func(func()), onClose func(saved bool)) *OrderFormScreen {
	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = 40
		return in
	}

	s := &OrderFormScreen{
		styles:    styles,
		post:      post,
		onClose:   onClose,
		number:    newInput("", 50),
		date:      newInput("YYYY-MM-DD", 10),
		total:     newInput("0.00", 20),
		notes:     newInput("", 500),
		statuses:  model.AllStatuses(),
		fieldErrs: map[string]string{},
	}
	s.number.Focus()
	return s
}

// EmitLoad asks the presenter to populate the form.
func (s *OrderFormScreen) EmitLoad() { s.loadRequested.Emit(struct{}{}) }

func (s *OrderFormScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	w := width - 16
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	for _, in := range []*textinput.Model{&s.number, &s.date, &s.total, &s.notes} {
		in.Width = w
	}
}

func (s *OrderFormScreen) Loading() bool { return s.loading }

func (s *OrderFormScreen) focusedInput() *textinput.Model {
	switch s.focus {
	case ofNumber:
		return &s.number
	case ofDate:
		return &s.date
	case ofTotal:
		return &s.total
	case ofNotes:
		return &s.notes
	default:
		return nil
	}
}

func (s *OrderFormScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "esc":
		s.cancelRequested.Emit(struct{}{})
		return nil
	case "ctrl+s":
		s.saveRequested.Emit(struct{}{})
		return nil
	case "tab", "down":
		return s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s.setFocus(s.focus - 1)
	case "enter":
		if s.focus == ofNotes {
			s.saveRequested.Emit(struct{}{})
			return nil
		}
		return s.setFocus(s.focus + 1)
	case "left", "right":
		// Arrows cycle pickers; on text fields they move the cursor.
		if s.focus == ofCustomer || s.focus == ofStatus {
			step := 1
			if key.String() == "left" {
				step = -1
			}
			s.cyclePicker(step)
			return nil
		}
	}

	if in := s.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return cmd
	}
	return nil
}

func (s *OrderFormScreen) cyclePicker(step int) {
	switch s.focus {
	case ofCustomer:
		if n := len(s.customers); n > 0 {
			s.customerIdx = (s.customerIdx + step + n) % n
		}
	case ofStatus:
		if n := len(s.statuses); n > 0 {
			s.statusIdx = (s.statusIdx + step + n) % n
		}
	}
}

func (s *OrderFormScreen) setFocus(slot int) tea.Cmd {
	if slot < 0 {
		slot = ofSlotCount - 1
	}
	if slot >= ofSlotCount {
		slot = 0
	}
	s.focus = slot

	s.number.Blur()
	s.date.Blur()
	s.total.Blur()
	s.notes.Blur()
	if in := s.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

func (s *OrderFormScreen) pickerView(slot int, text string) string {
	if s.focus == slot {
		return s.styles.Picker.Render("< " + text + " >")
	}
	return text
}

func (s *OrderFormScreen) customerText() string {
	if len(s.customers) == 0 {
		return "no active customers"
	}
	c := s.customers[s.customerIdx]
	return fmt.Sprintf("%s (%s)", c.Name, c.Email)
}

func (s *OrderFormScreen) View() string {
	var b strings.Builder

	title := "New order"
	if s.editMode {
		title = "Edit order"
	}
	b.WriteString(s.styles.Title.Render(title))
	b.WriteString("\n")

	rows := []struct {
		slot  int
		key   string
		label string
		view  string
	}{
		{ofNumber, "number", "Number", s.number.View()},
		{ofCustomer, "customer", "Customer", s.pickerView(ofCustomer, s.customerText())},
		{ofDate, "date", "Date", s.date.View()},
		{ofTotal, "total", "Total", s.total.View()},
		{ofStatus, "status", "Status", s.pickerView(ofStatus, s.statusText())},
		{ofNotes, "notes", "Notes", s.notes.View()},
	}
	for _, row := range rows {
		label := s.styles.Label
		if s.focus == row.slot {
			label = s.styles.LabelFocus
		}
		b.WriteString(label.Render(row.label))
		b.WriteString(row.view)
		b.WriteString("\n")
		if msg, ok := s.fieldErrs[row.key]; ok {
			b.WriteString(s.styles.FieldError.Render(msg))
			b.WriteString("\n")
		}
	}

	if s.banner != "" {
		b.WriteString("\n")
		b.WriteString(s.styles.Error.Render(s.banner))
		b.WriteString("\n")
	}
	return s.styles.Box.Render(b.String())
}

func (s *OrderFormScreen) statusText() string {
	if len(s.statuses) == 0 {
		return ""
	}
	return s.statuses[s.statusIdx].String()
}

func (s *OrderFormScreen) helpLine() string {
	return "tab next field · left/right pick · ctrl+s save · esc cancel"
}

// ---- view interface ----

func (s *OrderFormScreen) Post(fn func()) { s.post(fn) }

func (s *OrderFormScreen) SetLoading(loading bool) { s.loading = loading }

func (s *OrderFormScreen) SetEditMode(edit bool) { s.editMode = edit }

func (s *OrderFormScreen) SetCustomerOptions(customers []model.Customer) {
	s.customers = customers
	if s.customerIdx >= len(customers) {
		s.customerIdx = 0
	}
}

func (s *OrderFormScreen) SetFields(data presenter.OrderFormData) {
	s.number.SetValue(data.Number)
	s.date.SetValue(data.Date)
	s.total.SetValue(data.Total)
	s.notes.SetValue(data.Notes)

	for i, c := range s.customers {
		if c.ID == data.CustomerID {
			s.customerIdx = i
			break
		}
	}

	s.statusIdx = 0
	if data.Status != "" {
		status, known := model.ParseOrderStatus(data.Status)
		if !known {
			// Stored statuses are free text; keep unknown ones selectable.
			s.statuses = append(s.statuses, status)
		}
		for i, st := range s.statuses {
			if st == status {
				s.statusIdx = i
				break
			}
		}
	}
}

func (s *OrderFormScreen) FieldValues() presenter.OrderFormData {
	var customerID int64
	if len(s.customers) > 0 {
		customerID = s.customers[s.customerIdx].ID
	}
	return presenter.OrderFormData{
		Number:     s.number.Value(),
		CustomerID: customerID,
		Date:       s.date.Value(),
		Total:      s.total.Value(),
		Status:     s.statusText(),
		Notes:      s.notes.Value(),
	}
}

func (s *OrderFormScreen) SetFieldError(field, message string) {
	s.fieldErrs[field] = message
}

func (s *OrderFormScreen) ClearFieldErrors() {
	s.fieldErrs = map[string]string{}
	s.banner = ""
}

func (s *OrderFormScreen) ShowError(message string) { s.banner = message }

func (s *OrderFormScreen) CloseWithResult(saved bool) {
	if s.closed {
		return
	}
	s.closed = true
	s.onClose(saved)
}

func (s *OrderFormScreen) LoadRequested() *event.Signal[struct{}] { return &s.loadRequested }

func (s *OrderFormScreen) SaveRequested() *event.Signal[struct{}] { return &s.saveRequested }

func (s *OrderFormScreen) CancelRequested() *event.Signal[struct{}] { return &s.cancelRequested }
