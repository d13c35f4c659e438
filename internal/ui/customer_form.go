package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmdesk/internal/event"
	"crmdesk/internal/presenter"
)

// Customer form focus slots, in traversal order.
const (
	cfName = iota
	cfEmail
	cfPhone
	cfAddress
	cfCity
	cfCountry
	cfActive
	cfSlotCount
)

var customerFieldKeys = [...]string{"name", "email", "phone", "address", "city", "country"}

var customerFieldLabels = [...]string{"Name", "Email", "Phone", "Address", "City", "Country"}

// CustomerFormScreen is the add/edit customer form. It owns the raw
// input widgets; trimming and validation belong to the presenter and
// the domain layer.
type CustomerFormScreen struct {
	styles  Styles
	post    func(func())
	onClose func(saved bool)

	inputs    []textinput.Model
	active    bool
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

var _ presenter.CustomerFormView = (*CustomerFormScreen)(nil)

func NewCustomerFormScreen(styles Styles, post func(func()), onClose func(saved bool)) *CustomerFormScreen {
	inputs := make([]textinput.Model, len(customerFieldKeys))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 255
		in.Width = 40
		inputs[i] = in
	}
	inputs[cfName].Focus()

	return &CustomerFormScreen{
		styles:    styles,
		post:      post,
		onClose:   onClose,
		inputs:    inputs,
		fieldErrs: map[string]string{},
	}
}

// EmitLoad asks the presenter to populate the form.
func (s *CustomerFormScreen) EmitLoad() { s.loadRequested.Emit(struct{}{}) }

func (s *CustomerFormScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	w := width - 16
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	for i := range s.inputs {
		s.inputs[i].Width = w
	}
}

func (s *CustomerFormScreen) Loading() bool { return s.loading }

func (s *CustomerFormScreen) Update(msg tea.Msg) tea.Cmd {
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
		if s.focus == cfActive {
			s.saveRequested.Emit(struct{}{})
			return nil
		}
		return s.setFocus(s.focus + 1)
	case " ":
		if s.focus == cfActive {
			s.active = !s.active
			return nil
		}
	}

	if s.focus < len(s.inputs) {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return cmd
	}
	return nil
}

func (s *CustomerFormScreen) setFocus(slot int) tea.Cmd {
	if slot < 0 {
		slot = cfSlotCount - 1
	}
	if slot >= cfSlotCount {
		slot = 0
	}
	s.focus = slot

	var cmd tea.Cmd
	for i := range s.inputs {
		if i == slot {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

func (s *CustomerFormScreen) View() string {
	var b strings.Builder

	title := "New customer"
	if s.editMode {
		title = "Edit customer"
	}
	b.WriteString(s.styles.Title.Render(title))
	b.WriteString("\n")

	for i := range s.inputs {
		label := s.styles.Label
		if s.focus == i {
			label = s.styles.LabelFocus
		}
		b.WriteString(label.Render(customerFieldLabels[i]))
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := s.fieldErrs[customerFieldKeys[i]]; ok {
			b.WriteString(s.styles.FieldError.Render(msg))
			b.WriteString("\n")
		}
	}

	mark := "[ ]"
	if s.active {
		mark = "[x]"
	}
	label := s.styles.Label
	if s.focus == cfActive {
		label = s.styles.LabelFocus
	}
	b.WriteString(label.Render("Active"))
	b.WriteString(s.styles.Picker.Render(mark))
	b.WriteString("\n")

	if s.banner != "" {
		b.WriteString("\n")
		b.WriteString(s.styles.Error.Render(s.banner))
		b.WriteString("\n")
	}
	return s.styles.Box.Render(b.String())
}

func (s *CustomerFormScreen) helpLine() string {
	return "tab next field · space toggle active · ctrl+s save · esc cancel"
}

// ---- view interface ----

func (s *CustomerFormScreen) Post(fn func()) { s.post(fn) }

func (s *CustomerFormScreen) SetLoading(loading bool) { s.loading = loading }

func (s *CustomerFormScreen) SetEditMode(edit bool) { s.editMode = edit }

func (s *CustomerFormScreen) SetFields(data presenter.CustomerFormData) {
	s.inputs[cfName].SetValue(data.Name)
	s.inputs[cfEmail].SetValue(data.Email)
	s.inputs[cfPhone].SetValue(data.Phone)
	s.inputs[cfAddress].SetValue(data.Address)
	s.inputs[cfCity].SetValue(data.City)
	s.inputs[cfCountry].SetValue(data.Country)
	s.active = data.Active
}

func (s *CustomerFormScreen) FieldValues() presenter.CustomerFormData {
	return presenter.CustomerFormData{
		Name:    s.inputs[cfName].Value(),
		Email:   s.inputs[cfEmail].Value(),
		Phone:   s.inputs[cfPhone].Value(),
		Address: s.inputs[cfAddress].Value(),
		City:    s.inputs[cfCity].Value(),
		Country: s.inputs[cfCountry].Value(),
		Active:  s.active,
	}
}

func (s *CustomerFormScreen) SetFieldError(field, message string) {
	s.fieldErrs[field] = message
}

func (s *CustomerFormScreen) ClearFieldErrors() {
	s.fieldErrs = map[string]string{}
	s.banner = ""
}

func (s *CustomerFormScreen) ShowError(message string) { s.banner = message }

func (s *CustomerFormScreen) CloseWithResult(saved bool) {
	if s.closed {
		return
	}
	s.closed = true
	s.onClose(saved)
}

func (s *CustomerFormScreen) LoadRequested() *event.Signal[struct{}] { return &s.loadRequested }

func (s *CustomerFormScreen) SaveRequested() *event.Signal[struct{}] { return &s.saveRequested }

func (s *CustomerFormScreen) CancelRequested() *event.Signal[struct{}] { return &s.cancelRequested }
