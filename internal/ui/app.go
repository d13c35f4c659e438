package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"crmdesk/internal/presenter"
	"crmdesk/internal/service"
)

// ViewMode selects which list screen fills the body.
type ViewMode int

const (
	ModeCustomers ViewMode = iota
	ModeOrders
)

// applyMsg carries a presenter callback onto the program goroutine.
// Executing it inside Update is what makes Dispatcher.Post safe.
type applyMsg struct {
	fn func()
}

// App is the root bubbletea model. It owns the screens, creates a
// presenter per screen, and routes key input to whichever screen or
// modal currently has focus.
type App struct {
	log    *zap.Logger
	styles Styles
	opts   presenter.Options

	customerSvc service.CustomerService
	orderSvc    service.OrderService

	send func(tea.Msg)

	mode   ViewMode
	width  int
	height int
	spin   spinner.Model

	customerList  *CustomerListScreen
	customerListP *presenter.CustomerListPresenter
	orderList     *OrderListScreen
	orderListP    *presenter.OrderListPresenter

	// At most one form is open at a time; nil when closed.
	customerForm  *CustomerFormScreen
	customerFormP *presenter.CustomerFormPresenter
	orderForm     *OrderFormScreen
	orderFormP    *presenter.OrderFormPresenter

	quitting bool
}

func NewApp(customers service.CustomerService, orders service.OrderService, log *zap.Logger, opts presenter.Options) *App {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	a := &App{
		log:         log,
		styles:      styles,
		opts:        opts,
		customerSvc: customers,
		orderSvc:    orders,
		spin:        sp,
	}

	a.customerList = NewCustomerListScreen(styles, a.Post,
		func() { a.openCustomerForm(0) },
		func(id int64) { a.openCustomerForm(id) },
	)
	a.customerListP = presenter.NewCustomerListPresenter(a.customerList, customers, log, opts)

	a.orderList = NewOrderListScreen(styles, a.Post,
		func() { a.openOrderForm(0) },
		func(id int64) { a.openOrderForm(id) },
	)
	a.orderListP = presenter.NewOrderListPresenter(a.orderList, orders, log, opts)

	return a
}

// Attach wires the running program in so background goroutines can
// reach the update loop. Call it after tea.NewProgram, before Run.
func (a *App) Attach(p *tea.Program) {
	a.send = p.Send
}

// Post satisfies presenter.Dispatcher. The callback runs inside Update,
// on the program goroutine.
func (a *App) Post(fn func()) {
	a.send(applyMsg{fn: fn})
}

func (a *App) Init() tea.Cmd {
	a.customerList.EmitLoad()
	return a.spin.Tick
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyMsg:
		msg.fn()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := a.height - 4
		a.customerList.SetSize(a.width, body)
		a.orderList.SetSize(a.width, body)
		if a.customerForm != nil {
			a.customerForm.SetSize(a.width, body)
		}
		if a.orderForm != nil {
			a.orderForm.SetSize(a.width, body)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	// Open forms are modal.
	if a.customerForm != nil {
		return a, a.customerForm.Update(msg)
	}
	if a.orderForm != nil {
		return a, a.orderForm.Update(msg)
	}

	if !a.activeCapturing() {
		switch msg.String() {
		case "q":
			return a, a.quit()
		case "tab":
			a.switchMode()
			return a, nil
		}
	}

	if a.mode == ModeOrders {
		return a, a.orderList.Update(msg)
	}
	return a, a.customerList.Update(msg)
}

func (a *App) activeCapturing() bool {
	if a.mode == ModeOrders {
		return a.orderList.capturing()
	}
	return a.customerList.capturing()
}

func (a *App) switchMode() {
	if a.mode == ModeCustomers {
		a.mode = ModeOrders
	} else {
		a.mode = ModeCustomers
	}
	// Reload on entry so edits made on the other screen show up.
	if a.mode == ModeOrders {
		a.orderList.EmitLoad()
	} else {
		a.customerList.EmitLoad()
	}
}

func (a *App) quit() tea.Cmd {
	a.shutdown()
	a.quitting = true
	return tea.Quit
}

// shutdown closes every presenter so in-flight work stops posting back.
func (a *App) shutdown() {
	a.closeCustomerFormPresenter()
	a.closeOrderFormPresenter()
	a.customerListP.Close()
	a.orderListP.Close()
}

func (a *App) openCustomerForm(id int64) {
	form := NewCustomerFormScreen(a.styles, a.Post, a.onCustomerFormClosed)
	form.SetSize(a.width, a.height-4)
	a.customerForm = form
	a.customerFormP = presenter.NewCustomerFormPresenter(form, a.customerSvc, a.log, id)
	form.EmitLoad()
}

func (a *App) onCustomerFormClosed(saved bool) {
	a.closeCustomerFormPresenter()
	a.customerForm = nil
	if saved {
		a.customerList.EmitLoad()
	}
}

func (a *App) closeCustomerFormPresenter() {
	if a.customerFormP != nil {
		a.customerFormP.Close()
		a.customerFormP = nil
	}
}

func (a *App) openOrderForm(id int64) {
	form := NewOrderFormScreen(a.styles, a.Post, a.onOrderFormClosed)
	form.SetSize(a.width, a.height-4)
	a.orderForm = form
	a.orderFormP = presenter.NewOrderFormPresenter(form, a.orderSvc, a.log, id)
	form.EmitLoad()
}

func (a *App) onOrderFormClosed(saved bool) {
	a.closeOrderFormPresenter()
	a.orderForm = nil
	if saved {
		a.orderList.EmitLoad()
	}
}

func (a *App) closeOrderFormPresenter() {
	if a.orderFormP != nil {
		a.orderFormP.Close()
		a.orderFormP = nil
	}
}

func (a *App) anyLoading() bool {
	if a.customerForm != nil {
		return a.customerForm.Loading()
	}
	if a.orderForm != nil {
		return a.orderForm.Loading()
	}
	if a.mode == ModeOrders {
		return a.orderList.Loading()
	}
	return a.customerList.Loading()
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	header := a.renderHeader()
	footer := a.styles.Footer.Render(a.helpLine())

	var body string
	switch {
	case a.customerForm != nil:
		body = a.customerForm.View()
	case a.orderForm != nil:
		body = a.orderForm.View()
	case a.mode == ModeOrders:
		body = a.orderList.View()
	default:
		body = a.customerList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *App) renderHeader() string {
	customersTab := a.styles.Tab.Render("Customers")
	ordersTab := a.styles.Tab.Render("Orders")
	if a.mode == ModeCustomers {
		customersTab = a.styles.TabActive.Render("Customers")
	} else {
		ordersTab = a.styles.TabActive.Render("Orders")
	}

	line := a.styles.Header.Render("CRM Desk") + customersTab + ordersTab
	if a.anyLoading() {
		line += "  " + a.spin.View() + a.styles.Muted.Render("loading")
	}
	return line
}

func (a *App) helpLine() string {
	switch {
	case a.customerForm != nil:
		return a.customerForm.helpLine()
	case a.orderForm != nil:
		return a.orderForm.helpLine()
	case a.mode == ModeOrders:
		return a.orderList.helpLine()
	default:
		return a.customerList.helpLine()
	}
}
