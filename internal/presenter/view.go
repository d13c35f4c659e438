package presenter

import (
	"crmdesk/internal/event"
	"crmdesk/internal/model"
)

// CustomerListView is the narrow surface the customer list screen
// exposes to its presenter.
type CustomerListView interface {
	Dispatcher

	SetLoading(loading bool)
	SetCustomers(customers []model.Customer)
	SetStatus(text string)
	ShowError(message string)
	AskConfirm(prompt string)

	LoadRequested() *event.Signal[struct{}]
	SearchChanged() *event.Signal[string]
	ActiveOnlyToggled() *event.Signal[bool]
	DeleteRequested() *event.Signal[int64]
	DeleteConfirmed() *event.Signal[bool]
}

// CustomerFormData carries the raw form field values. The presenter
// trims and converts; the view only displays.
type CustomerFormData struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Country string
	Active  bool
}

// CustomerFormView is the narrow surface of the customer add/edit form.
type CustomerFormView interface {
	Dispatcher

	SetLoading(loading bool)
	SetEditMode(edit bool)
	SetFields(data CustomerFormData)
	FieldValues() CustomerFormData
	SetFieldError(field, message string)
	ClearFieldErrors()
	ShowError(message string)
	CloseWithResult(saved bool)

	LoadRequested() *event.Signal[struct{}]
	SaveRequested() *event.Signal[struct{}]
	CancelRequested() *event.Signal[struct{}]
}

// OrderListView is the narrow surface the order list screen exposes to
// its presenter.
type OrderListView interface {
	Dispatcher

	SetLoading(loading bool)
	SetOrders(orders []model.Order)
	SetStatus(text string)
	ShowError(message string)
	AskConfirm(prompt string)

	LoadRequested() *event.Signal[struct{}]
	SearchChanged() *event.Signal[string]
	DeleteRequested() *event.Signal[int64]
	DeleteConfirmed() *event.Signal[bool]
}

// OrderFormData carries the raw form field values. Total and Date stay
// strings here; parsing them is presenter work.
type OrderFormData struct {
	Number     string
	CustomerID int64
	Date       string
	Total      string
	Status     string
	Notes      string
}

// OrderFormView is the narrow surface of the order add/edit form.
type OrderFormView interface {
	Dispatcher

	SetLoading(loading bool)
	SetEditMode(edit bool)
	SetCustomerOptions(customers []model.Customer)
	SetFields(data OrderFormData)
	FieldValues() OrderFormData
	SetFieldError(field, message string)
	ClearFieldErrors()
	ShowError(message string)
	CloseWithResult(saved bool)

	LoadRequested() *event.Signal[struct{}]
	SaveRequested() *event.Signal[struct{}]
	CancelRequested() *event.Signal[struct{}]
}
