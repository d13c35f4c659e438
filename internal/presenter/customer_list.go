package presenter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"crmdesk/internal/event"
	"crmdesk/internal/model"
	"crmdesk/internal/service"
)

// CustomerListPresenter drives the customer list screen: initial load,
// debounced search, the active-only filter and guarded deletion.
type CustomerListPresenter struct {
	view     CustomerListView
	service  service.CustomerService
	log      *zap.Logger
	opts     Options
	debounce *searchDebouncer

	subs []*event.Subscription

	// UI-goroutine state
	closed        bool
	term          string
	activeOnly    bool
	customers     []model.Customer
	pendingDelete int64
}

func NewCustomerListPresenter(view CustomerListView, svc service.CustomerService, log *zap.Logger, opts Options) *CustomerListPresenter {
	p := &CustomerListPresenter{
		view:     view,
		service:  svc,
		log:      log,
		opts:     opts,
		debounce: newSearchDebouncer(opts.debounce()),
	}

	p.subs = append(p.subs,
		view.LoadRequested().Subscribe(func(struct{}) { p.onLoadRequested() }),
		view.SearchChanged().Subscribe(p.onSearchChanged),
		view.ActiveOnlyToggled().Subscribe(p.onActiveOnlyToggled),
		view.DeleteRequested().Subscribe(p.onDeleteRequested),
		view.DeleteConfirmed().Subscribe(p.onDeleteConfirmed),
	)
	return p
}

// Close detaches from the view and cancels any pending search. Safe to
// call more than once.
func (p *CustomerListPresenter) Close() {
	if p.closed {
		return
	}
	p.closed = true

	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
	p.debounce.Cancel()
}

func (p *CustomerListPresenter) onLoadRequested() {
	p.refresh()
}

func (p *CustomerListPresenter) onActiveOnlyToggled(activeOnly bool) {
	if p.closed {
		return
	}
	p.activeOnly = activeOnly
	p.refresh()
}

// refresh reloads the list honoring the current search term and the
// active-only filter. A non-blank term wins over the filter.
func (p *CustomerListPresenter) refresh() {
	if p.closed {
		return
	}
	p.view.SetLoading(true)

	term, activeOnly := p.term, p.activeOnly
	go func() {
		ctx := context.Background()

		var customers []model.Customer
		var err error
		switch {
		case strings.TrimSpace(term) != "":
			customers, err = p.service.Search(ctx, term)
		case activeOnly:
			customers, err = p.service.ListActive(ctx)
		default:
			customers, err = p.service.List(ctx)
		}

		p.view.Post(func() {
			if p.closed {
				return
			}
			p.view.SetLoading(false)
			if err != nil {
				p.log.Error("load customers failed", zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				return
			}
			p.customers = customers
			p.view.SetCustomers(customers)
			p.view.SetStatus(fmt.Sprintf("%d customers", len(customers)))
		})
	}()
}

func (p *CustomerListPresenter) onSearchChanged(term string) {
	if p.closed {
		return
	}
	p.term = term
	p.view.SetLoading(true)

	p.debounce.Schedule(func(ctx context.Context) {
		customers, err := p.service.Search(ctx, term)
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			p.log.Debug("customer search superseded", zap.String("term", term))
			return
		}

		p.view.Post(func() {
			if p.closed || ctx.Err() != nil {
				return
			}
			p.view.SetLoading(false)
			if err != nil {
				p.log.Error("search customers failed", zap.String("term", term), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				return
			}
			p.customers = customers
			p.view.SetCustomers(customers)
			p.view.SetStatus(fmt.Sprintf("%d customers", len(customers)))
		})
	})
}

func (p *CustomerListPresenter) onDeleteRequested(id int64) {
	if p.closed {
		return
	}
	if id <= 0 {
		p.view.SetStatus("select a customer first")
		return
	}

	if !p.opts.ConfirmDelete {
		p.deleteCustomer(id)
		return
	}

	p.pendingDelete = id
	name := fmt.Sprintf("#%d", id)
	for _, c := range p.customers {
		if c.ID == id {
			name = c.Name
			break
		}
	}
	p.view.AskConfirm(fmt.Sprintf("Delete customer %q and all their orders?", name))
}

func (p *CustomerListPresenter) onDeleteConfirmed(confirmed bool) {
	if p.closed {
		return
	}
	id := p.pendingDelete
	p.pendingDelete = 0
	if !confirmed || id == 0 {
		return
	}
	p.deleteCustomer(id)
}

func (p *CustomerListPresenter) deleteCustomer(id int64) {
	p.view.SetLoading(true)

	go func() {
		err := p.service.Delete(context.Background(), id)

		p.view.Post(func() {
			if p.closed {
				return
			}
			p.view.SetLoading(false)

			var nfErr *service.NotFoundError
			switch {
			case errors.As(err, &nfErr):
				p.view.ShowError("Customer not found. It may have been deleted already.")
			case err != nil:
				p.log.Error("delete customer failed", zap.Int64("id", id), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				return
			default:
				p.view.SetStatus("customer deleted")
			}
			p.refresh()
		})
	}()
}
