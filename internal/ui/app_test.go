package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crmdesk/internal/model"
	"crmdesk/internal/presenter"
	"crmdesk/internal/service"
)

// stub services return canned data immediately; the appHarness pumps
// posted callbacks on the test goroutine the way the program loop would.

type stubCustomerService struct{}

func (stubCustomerService) List(context.Context) ([]model.Customer, error) {
	return testCustomers(), nil
}

func (stubCustomerService) ListActive(context.Context) ([]model.Customer, error) {
	return testCustomers()[:1], nil
}

func (stubCustomerService) Search(context.Context, string) ([]model.Customer, error) {
	return testCustomers(), nil
}

func (stubCustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	c := testCustomers()[0]
	c.ID = id
	return &c, nil
}

func (s stubCustomerService) GetWithOrders(ctx context.Context, id int64) (*model.Customer, error) {
	return s.Get(ctx, id)
}

func (stubCustomerService) Create(ctx context.Context, c *model.Customer) error { return nil }

func (stubCustomerService) Update(ctx context.Context, c *model.Customer) error { return nil }

func (stubCustomerService) Delete(context.Context, int64) error { return nil }

type stubOrderService struct{}

func stubOrders() []model.Order {
	return []model.Order{{
		ID: 1, Number: "ORD-1001", CustomerID: 1, CustomerName: "Ada Lovelace",
		OrderDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Total:     decimal.RequireFromString("149.90"), Status: model.StatusPending,
	}}
}

func (stubOrderService) List(context.Context) ([]model.Order, error) { return stubOrders(), nil }

func (stubOrderService) Search(context.Context, string) ([]model.Order, error) {
	return stubOrders(), nil
}

func (stubOrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	o := stubOrders()[0]
	o.ID = id
	return &o, nil
}

func (s stubOrderService) GetWithCustomer(ctx context.Context, id int64) (*model.Order, error) {
	return s.Get(ctx, id)
}

func (stubOrderService) ListForCustomer(context.Context, int64) ([]model.Order, error) {
	return stubOrders(), nil
}

func (stubOrderService) ActiveCustomers(context.Context) ([]model.Customer, error) {
	return testCustomers()[:1], nil
}

func (stubOrderService) SuggestNumber() string { return "ORD-NEXT" }

func (stubOrderService) Create(context.Context, *model.Order) error { return nil }

func (stubOrderService) Update(context.Context, *model.Order) error { return nil }

func (stubOrderService) Delete(context.Context, int64) error { return nil }

var (
	_ service.CustomerService = stubCustomerService{}
	_ service.OrderService    = stubOrderService{}
)

type appHarness struct {
	t    *testing.T
	app  *App
	msgs chan tea.Msg
}

func newAppHarness(t *testing.T) *appHarness {
	t.Helper()

	h := &appHarness{
		t:    t,
		app:  NewApp(stubCustomerService{}, stubOrderService{}, zap.NewNop(), presenter.Options{ConfirmDelete: true}),
		msgs: make(chan tea.Msg, 64),
	}
	h.app.send = func(msg tea.Msg) { h.msgs <- msg }
	t.Cleanup(h.app.shutdown)

	h.app.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return h
}

// pump feeds one queued message through Update, mimicking the program
// loop so posted callbacks run on the test goroutine.
func (h *appHarness) pump() {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		h.app.Update(msg)
	case <-time.After(time.Second):
		h.t.Fatal("no message posted")
	}
}

func (h *appHarness) key(msg tea.KeyMsg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	return cmd
}

func TestApp_InitLoadsCustomerList(t *testing.T) {
	h := newAppHarness(t)

	h.app.Init()
	h.pump()

	view := h.app.View()
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "2 customers")
	assert.Contains(t, view, "Customers")
}

func TestApp_TabSwitchesToOrders(t *testing.T) {
	h := newAppHarness(t)
	h.app.Init()
	h.pump()

	h.key(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ModeOrders, h.app.mode)
	h.pump() // order list load

	view := h.app.View()
	assert.Contains(t, view, "ORD-1001")
	assert.Contains(t, view, "149.90")
}

func TestApp_OpenEditAndCancelCustomerForm(t *testing.T) {
	h := newAppHarness(t)
	h.app.Init()
	h.pump()

	h.key(keyRunes("e")) // edit the selected row
	require.NotNil(t, h.app.customerForm)
	h.pump() // form load posts field values

	assert.Contains(t, h.app.View(), "Edit customer")
	assert.Equal(t, "ada@example.com", h.app.customerForm.FieldValues().Email)

	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, h.app.customerForm, "cancel closes the form")
	assert.Nil(t, h.app.customerFormP)
}

func TestApp_SavingNewCustomerReloadsList(t *testing.T) {
	h := newAppHarness(t)
	h.app.Init()
	h.pump()

	h.key(keyRunes("a"))
	require.NotNil(t, h.app.customerForm)
	h.pump() // form load
	assert.Contains(t, h.app.View(), "New customer")

	h.key(keyRunes("Ada Lovelace"))
	h.key(tea.KeyMsg{Type: tea.KeyTab})
	h.key(keyRunes("ada@example.com"))

	h.key(tea.KeyMsg{Type: tea.KeyCtrlS})
	h.pump() // save result closes the form
	require.Nil(t, h.app.customerForm)

	h.pump() // saved=true triggers a list reload
	assert.Contains(t, h.app.View(), "2 customers")
}

func TestApp_QuitClosesPresenters(t *testing.T) {
	h := newAppHarness(t)
	h.app.Init()
	h.pump()

	cmd := h.key(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, h.app.View())
}
