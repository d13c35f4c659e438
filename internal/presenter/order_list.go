package presenter

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"crmdesk/internal/event"
	"crmdesk/internal/model"
	"crmdesk/internal/service"
)

// OrderListPresenter drives the order list screen: initial load,
// debounced search and guarded deletion.
type OrderListPresenter struct {
	view     OrderListView
	service  service.OrderService
	log      *zap.Logger
	opts     Options
	debounce *searchDebouncer

	subs []*event.Subscription

	// UI-goroutine state
	closed        bool
	term          string
	orders        []model.Order
	pendingDelete int64
}

func NewOrderListPresenter(view OrderListView, svc service.OrderService, log *zap.Logger, opts Options) *OrderListPresenter {
	p := &OrderListPresenter{
		view:     view,
		service:  svc,
		log:      log,
		opts:     opts,
		debounce: newSearchDebouncer(opts.debounce()),
	}

	p.subs = append(p.subs,
		view.LoadRequested().Subscribe(func(struct{}) { p.refresh() }),
		view.SearchChanged().Subscribe(p.onSearchChanged),
		view.DeleteRequested().Subscribe(p.onDeleteRequested),
		view.DeleteConfirmed().Subscribe(p.onDeleteConfirmed),
	)
	return p
}

// Close detaches from the view and cancels any pending search. Safe to
// call more than once.
func (p *OrderListPresenter) Close() {
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

func (p *OrderListPresenter) refresh() {
	if p.closed {
		return
	}
	p.view.SetLoading(true)

	term := p.term
	go func() {
		orders, err := p.service.Search(context.Background(), term)

		p.view.Post(func() {
			if p.closed {
				return
			}
			p.view.SetLoading(false)
			if err != nil {
				p.log.Error("load orders failed", zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				return
			}
			p.orders = orders
			p.view.SetOrders(orders)
			p.view.SetStatus(fmt.Sprintf("%d orders", len(orders)))
		})
	}()
}

func (p *OrderListPresenter) onSearchChanged(term string) {
	if p.closed {
		return
	}
	p.term = term
	p.view.SetLoading(true)

	p.debounce.Schedule(func(ctx context.Context) {
		orders, err := p.service.Search(ctx, term)
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			p.log.Debug("order search superseded", zap.String("term", term))
			return
		}

		p.view.Post(func() {
			if p.closed || ctx.Err() != nil {
				return
			}
			p.view.SetLoading(false)
			if err != nil {
				p.log.Error("search orders failed", zap.String("term", term), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				return
			}
			p.orders = orders
			p.view.SetOrders(orders)
			p.view.SetStatus(fmt.Sprintf("%d orders", len(orders)))
		})
	})
}

func (p *OrderListPresenter) onDeleteRequested(id int64) {
	if p.closed {
		return
	}
	if id <= 0 {
		p.view.SetStatus("select an order first")
		return
	}

	if !p.opts.ConfirmDelete {
		p.deleteOrder(id)
		return
	}

	p.pendingDelete = id
	number := fmt.Sprintf("#%d", id)
	for _, o := range p.orders {
		if o.ID == id {
			number = o.Number
			break
		}
	}
	p.view.AskConfirm(fmt.Sprintf("Delete order %s?", number))
}

func (p *OrderListPresenter) onDeleteConfirmed(confirmed bool) {
	if p.closed {
		return
	}
	id := p.pendingDelete
	p.pendingDelete = 0
	if !confirmed || id == 0 {
		return
	}
	p.deleteOrder(id)
}

func (p *OrderListPresenter) deleteOrder(id int64) {
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
				p.view.ShowError("Order not found. It may have been deleted already.")
			case err != nil:
				p.log.Error("delete order failed", zap.Int64("id", id), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				return
			default:
				p.view.SetStatus("order deleted")
			}
			p.refresh()
		})
	}()
}
