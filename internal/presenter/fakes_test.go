package presenter

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"crmdesk/internal/event"
	"crmdesk/internal/model"
	"crmdesk/internal/service"
)

var (
	_ service.CustomerService = (*fakeCustomerService)(nil)
	_ service.OrderService    = (*fakeOrderService)(nil)
)

func sampleCustomers() []model.Customer {
	phone := "+44 20 7946 0101"
	return []model.Customer{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", Phone: &phone, Active: true},
		{ID: 2, Name: "Grace Hopper", Email: "grace@example.com", Active: false},
	}
}

func sampleOrders() []model.Order {
	return []model.Order{
		{ID: 1, Number: "ORD-1001", CustomerID: 1, Total: decimal.RequireFromString("149.90"),
			Status: model.StatusPending, OrderDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), CustomerName: "Ada Lovelace"},
		{ID: 2, Number: "ORD-1002", CustomerID: 1, Total: decimal.RequireFromString("880.00"),
			Status: model.StatusShipped, OrderDate: time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), CustomerName: "Ada Lovelace"},
	}
}

// ---- service fakes ----

type fakeCustomerService struct {
	mu          sync.Mutex
	searchTerms []string
	listCalls   int
	activeCalls int
	created     []*model.Customer
	updated     []*model.Customer
	deleted     []int64

	listFn   func(ctx context.Context) ([]model.Customer, error)
	activeFn func(ctx context.Context) ([]model.Customer, error)
	searchFn func(ctx context.Context, term string) ([]model.Customer, error)
	getFn    func(ctx context.Context, id int64) (*model.Customer, error)
	createFn func(ctx context.Context, c *model.Customer) error
	updateFn func(ctx context.Context, c *model.Customer) error
	deleteFn func(ctx context.Context, id int64) error
}

func (s *fakeCustomerService) List(ctx context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	s.listCalls++
	fn := s.listFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return sampleCustomers(), nil
}

func (s *fakeCustomerService) ListActive(ctx context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	s.activeCalls++
	fn := s.activeFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return sampleCustomers()[:1], nil
}

func (s *fakeCustomerService) Search(ctx context.Context, term string) ([]model.Customer, error) {
	s.mu.Lock()
	s.searchTerms = append(s.searchTerms, term)
	fn := s.searchFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, term)
	}
	return sampleCustomers(), nil
}

func (s *fakeCustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	s.mu.Lock()
	fn := s.getFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	c := sampleCustomers()[0]
	c.ID = id
	return &c, nil
}

func (s *fakeCustomerService) GetWithOrders(ctx context.Context, id int64) (*model.Customer, error) {
	return s.Get(ctx, id)
}

func (s *fakeCustomerService) Create(ctx context.Context, c *model.Customer) error {
	s.mu.Lock()
	s.created = append(s.created, c)
	fn := s.createFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, c)
	}
	c.ID = 99
	return nil
}

func (s *fakeCustomerService) Update(ctx context.Context, c *model.Customer) error {
	s.mu.Lock()
	s.updated = append(s.updated, c)
	fn := s.updateFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, c)
	}
	return nil
}

func (s *fakeCustomerService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.deleted = append(s.deleted, id)
	fn := s.deleteFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil
}

func (s *fakeCustomerService) terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searchTerms...)
}

func (s *fakeCustomerService) deletions() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.deleted...)
}

func (s *fakeCustomerService) lists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func (s *fakeCustomerService) actives() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCalls
}

func (s *fakeCustomerService) createdEntities() []*model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Customer(nil), s.created...)
}

func (s *fakeCustomerService) updatedEntities() []*model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Customer(nil), s.updated...)
}

type fakeOrderService struct {
	mu          sync.Mutex
	searchTerms []string
	created     []*model.Order
	updated     []*model.Order
	deleted     []int64
	suggestion  string

	searchFn func(ctx context.Context, term string) ([]model.Order, error)
	getFn    func(ctx context.Context, id int64) (*model.Order, error)
	createFn func(ctx context.Context, o *model.Order) error
	updateFn func(ctx context.Context, o *model.Order) error
	deleteFn func(ctx context.Context, id int64) error
}

func (s *fakeOrderService) List(ctx context.Context) ([]model.Order, error) {
	return sampleOrders(), nil
}

func (s *fakeOrderService) Search(ctx context.Context, term string) ([]model.Order, error) {
	s.mu.Lock()
	s.searchTerms = append(s.searchTerms, term)
	fn := s.searchFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, term)
	}
	return sampleOrders(), nil
}

func (s *fakeOrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	fn := s.getFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	o := sampleOrders()[0]
	o.ID = id
	return &o, nil
}

func (s *fakeOrderService) GetWithCustomer(ctx context.Context, id int64) (*model.Order, error) {
	return s.Get(ctx, id)
}

func (s *fakeOrderService) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return sampleOrders(), nil
}

func (s *fakeOrderService) ActiveCustomers(ctx context.Context) ([]model.Customer, error) {
	return sampleCustomers()[:1], nil
}

func (s *fakeOrderService) SuggestNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suggestion != "" {
		return s.suggestion
	}
	return "ORD-SUGGESTED"
}

func (s *fakeOrderService) Create(ctx context.Context, o *model.Order) error {
	s.mu.Lock()
	s.created = append(s.created, o)
	fn := s.createFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, o)
	}
	o.ID = 99
	return nil
}

func (s *fakeOrderService) Update(ctx context.Context, o *model.Order) error {
	s.mu.Lock()
	s.updated = append(s.updated, o)
	fn := s.updateFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, o)
	}
	return nil
}

func (s *fakeOrderService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.deleted = append(s.deleted, id)
	fn := s.deleteFn
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return nil
}

func (s *fakeOrderService) terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searchTerms...)
}

func (s *fakeOrderService) deletions() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.deleted...)
}

func (s *fakeOrderService) createdEntities() []*model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.Order(nil), s.created...)
}

// ---- view fakes ----
// Post runs inline on the calling goroutine, so every field is behind
// the mutex; the real views marshal onto the UI goroutine instead.

type fakeCustomerListView struct {
	mu sync.Mutex

	loading   []bool
	customers [][]model.Customer
	statuses  []string
	errs      []string
	confirms  []string

	loadRequested   event.Signal[struct{}]
	searchChanged   event.Signal[string]
	activeToggled   event.Signal[bool]
	deleteRequested event.Signal[int64]
	deleteConfirmed event.Signal[bool]
}

func (v *fakeCustomerListView) Post(fn func()) { fn() }

func (v *fakeCustomerListView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *fakeCustomerListView) SetCustomers(customers []model.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.customers = append(v.customers, customers)
}

func (v *fakeCustomerListView) SetStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, text)
}

func (v *fakeCustomerListView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, message)
}

func (v *fakeCustomerListView) AskConfirm(prompt string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirms = append(v.confirms, prompt)
}

func (v *fakeCustomerListView) LoadRequested() *event.Signal[struct{}] { return &v.loadRequested }

func (v *fakeCustomerListView) SearchChanged() *event.Signal[string] { return &v.searchChanged }

func (v *fakeCustomerListView) ActiveOnlyToggled() *event.Signal[bool] { return &v.activeToggled }

func (v *fakeCustomerListView) DeleteRequested() *event.Signal[int64] { return &v.deleteRequested }

func (v *fakeCustomerListView) DeleteConfirmed() *event.Signal[bool] { return &v.deleteConfirmed }

var _ CustomerListView = (*fakeCustomerListView)(nil)

func (v *fakeCustomerListView) lastCustomers() []model.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.customers) == 0 {
		return nil
	}
	return v.customers[len(v.customers)-1]
}

func (v *fakeCustomerListView) customerUpdates() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.customers)
}

func (v *fakeCustomerListView) errorMessages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.errs...)
}

func (v *fakeCustomerListView) statusMessages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.statuses...)
}

func (v *fakeCustomerListView) confirmPrompts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.confirms...)
}

func (v *fakeCustomerListView) loadingStates() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.loading...)
}

type fakeCustomerFormView struct {
	mu sync.Mutex

	loading    []bool
	editMode   []bool
	fields     []CustomerFormData
	values     CustomerFormData
	fieldErrs  map[string]string
	clearCalls int
	errs       []string
	closeSaved []bool

	loadRequested   event.Signal[struct{}]
	saveRequested   event.Signal[struct{}]
	cancelRequested event.Signal[struct{}]
}

func newFakeCustomerFormView() *fakeCustomerFormView {
	return &fakeCustomerFormView{fieldErrs: map[string]string{}}
}

func (v *fakeCustomerFormView) Post(fn func()) { fn() }

func (v *fakeCustomerFormView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *fakeCustomerFormView) SetEditMode(edit bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editMode = append(v.editMode, edit)
}

func (v *fakeCustomerFormView) SetFields(data CustomerFormData) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields = append(v.fields, data)
}

func (v *fakeCustomerFormView) FieldValues() CustomerFormData {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values
}

func (v *fakeCustomerFormView) SetFieldError(field, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrs[field] = message
}

func (v *fakeCustomerFormView) ClearFieldErrors() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrs = map[string]string{}
	v.clearCalls++
}

func (v *fakeCustomerFormView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, message)
}

func (v *fakeCustomerFormView) CloseWithResult(saved bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeSaved = append(v.closeSaved, saved)
}

func (v *fakeCustomerFormView) LoadRequested() *event.Signal[struct{}] { return &v.loadRequested }

func (v *fakeCustomerFormView) SaveRequested() *event.Signal[struct{}] { return &v.saveRequested }

func (v *fakeCustomerFormView) CancelRequested() *event.Signal[struct{}] { return &v.cancelRequested }

var _ CustomerFormView = (*fakeCustomerFormView)(nil)

func (v *fakeCustomerFormView) setValues(data CustomerFormData) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values = data
}

func (v *fakeCustomerFormView) lastFields() (CustomerFormData, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.fields) == 0 {
		return CustomerFormData{}, false
	}
	return v.fields[len(v.fields)-1], true
}

func (v *fakeCustomerFormView) fieldErrors() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := map[string]string{}
	for k, val := range v.fieldErrs {
		out[k] = val
	}
	return out
}

func (v *fakeCustomerFormView) errorMessages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.errs...)
}

func (v *fakeCustomerFormView) closeResults() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.closeSaved...)
}

func (v *fakeCustomerFormView) editModes() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.editMode...)
}

type fakeOrderListView struct {
	mu sync.Mutex

	loading  []bool
	orders   [][]model.Order
	statuses []string
	errs     []string
	confirms []string

	loadRequested   event.Signal[struct{}]
	searchChanged   event.Signal[string]
	deleteRequested event.Signal[int64]
	deleteConfirmed event.Signal[bool]
}

func (v *fakeOrderListView) Post(fn func()) { fn() }

func (v *fakeOrderListView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *fakeOrderListView) SetOrders(orders []model.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.orders = append(v.orders, orders)
}

func (v *fakeOrderListView) SetStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, text)
}

func (v *fakeOrderListView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, message)
}

func (v *fakeOrderListView) AskConfirm(prompt string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirms = append(v.confirms, prompt)
}

func (v *fakeOrderListView) LoadRequested() *event.Signal[struct{}] { return &v.loadRequested }

func (v *fakeOrderListView) SearchChanged() *event.Signal[string] { return &v.searchChanged }

func (v *fakeOrderListView) DeleteRequested() *event.Signal[int64] { return &v.deleteRequested }

func (v *fakeOrderListView) DeleteConfirmed() *event.Signal[bool] { return &v.deleteConfirmed }

var _ OrderListView = (*fakeOrderListView)(nil)

func (v *fakeOrderListView) lastOrders() []model.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.orders) == 0 {
		return nil
	}
	return v.orders[len(v.orders)-1]
}

func (v *fakeOrderListView) errorMessages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.errs...)
}

func (v *fakeOrderListView) confirmPrompts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.confirms...)
}

type fakeOrderFormView struct {
	mu sync.Mutex

	loading    []bool
	editMode   []bool
	options    [][]model.Customer
	fields     []OrderFormData
	values     OrderFormData
	fieldErrs  map[string]string
	errs       []string
	closeSaved []bool

	loadRequested   event.Signal[struct{}]
	saveRequested   event.Signal[struct{}]
	cancelRequested event.Signal[struct{}]
}

func newFakeOrderFormView() *fakeOrderFormView {
	return &fakeOrderFormView{fieldErrs: map[string]string{}}
}

func (v *fakeOrderFormView) Post(fn func()) { fn() }

func (v *fakeOrderFormView) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, loading)
}

func (v *fakeOrderFormView) SetEditMode(edit bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editMode = append(v.editMode, edit)
}

func (v *fakeOrderFormView) SetCustomerOptions(customers []model.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.options = append(v.options, customers)
}

func (v *fakeOrderFormView) SetFields(data OrderFormData) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields = append(v.fields, data)
}

func (v *fakeOrderFormView) FieldValues() OrderFormData {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values
}

func (v *fakeOrderFormView) SetFieldError(field, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrs[field] = message
}

func (v *fakeOrderFormView) ClearFieldErrors() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrs = map[string]string{}
}

func (v *fakeOrderFormView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, message)
}

func (v *fakeOrderFormView) CloseWithResult(saved bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeSaved = append(v.closeSaved, saved)
}

func (v *fakeOrderFormView) LoadRequested() *event.Signal[struct{}] { return &v.loadRequested }

func (v *fakeOrderFormView) SaveRequested() *event.Signal[struct{}] { return &v.saveRequested }

func (v *fakeOrderFormView) CancelRequested() *event.Signal[struct{}] { return &v.cancelRequested }

var _ OrderFormView = (*fakeOrderFormView)(nil)

func (v *fakeOrderFormView) setValues(data OrderFormData) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values = data
}

func (v *fakeOrderFormView) lastFields() (OrderFormData, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.fields) == 0 {
		return OrderFormData{}, false
	}
	return v.fields[len(v.fields)-1], true
}

func (v *fakeOrderFormView) customerOptions() [][]model.Customer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([][]model.Customer(nil), v.options...)
}

func (v *fakeOrderFormView) fieldErrors() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := map[string]string{}
	for k, val := range v.fieldErrs {
		out[k] = val
	}
	return out
}

func (v *fakeOrderFormView) errorMessages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.errs...)
}

func (v *fakeOrderFormView) closeResults() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.closeSaved...)
}
