package presenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crmdesk/internal/event"
	"crmdesk/internal/model"
	"crmdesk/internal/service"
	"crmdesk/internal/util"
)

// orderDateLayout is how the form displays and accepts order dates.
const orderDateLayout = "2006-01-02"

// orderFieldNames translates the domain validation keys into the names
// the form's inputs are registered under.
var orderFieldNames = map[string]string{
	"number":   "number",
	"customer": "customer",
	"date":     "date",
	"total":    "total",
	"status":   "status",
	"notes":    "notes",
}

// OrderFormPresenter drives the add/edit order form. orderID zero means
// a new record.
type OrderFormPresenter struct {
	view    OrderFormView
	service service.OrderService
	log     *zap.Logger

	subs []*event.Subscription

	// UI-goroutine state
	closed  bool
	orderID int64
	loaded  *model.Order
}

func NewOrderFormPresenter(view OrderFormView, svc service.OrderService, log *zap.Logger, orderID int64) *OrderFormPresenter {
	p := &OrderFormPresenter{
		view:    view,
		service: svc,
		log:     log,
		orderID: orderID,
	}

	p.subs = append(p.subs,
		view.LoadRequested().Subscribe(func(struct{}) { p.onLoadRequested() }),
		view.SaveRequested().Subscribe(func(struct{}) { p.onSaveRequested() }),
		view.CancelRequested().Subscribe(func(struct{}) { p.onCancelRequested() }),
	)
	return p
}

// Close detaches from the view. Safe to call more than once.
func (p *OrderFormPresenter) Close() {
	if p.closed {
		return
	}
	p.closed = true

	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
}

// onLoadRequested fills the customer picker and, in edit mode, the
// order's current values. New orders get a suggested number and today's
// date.
func (p *OrderFormPresenter) onLoadRequested() {
	if p.closed {
		return
	}
	p.view.SetEditMode(p.orderID != 0)
	p.view.SetLoading(true)

	id := p.orderID
	go func() {
		ctx := context.Background()

		customers, err := p.service.ActiveCustomers(ctx)

		var order *model.Order
		if err == nil && id != 0 {
			order, err = p.service.Get(ctx, id)
		}

		suggested := ""
		if id == 0 {
			suggested = p.service.SuggestNumber()
		}

		p.view.Post(func() {
			if p.closed {
				return
			}
			p.view.SetLoading(false)

			if err != nil {
				p.log.Error("load order form failed", zap.Int64("id", id), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				p.view.CloseWithResult(false)
				return
			}
			if id != 0 && order == nil {
				p.view.ShowError("Order not found. It may have been deleted.")
				p.view.CloseWithResult(false)
				return
			}

			p.view.SetCustomerOptions(customers)

			if id == 0 {
				p.view.SetFields(OrderFormData{
					Number: suggested,
					Date:   time.Now().UTC().Format(orderDateLayout),
					Status: model.StatusPending.String(),
				})
				return
			}

			p.loaded = order
			p.view.SetFields(OrderFormData{
				Number:     order.Number,
				CustomerID: order.CustomerID,
				Date:       order.OrderDate.Format(orderDateLayout),
				Total:      order.Total.String(),
				Status:     order.Status.String(),
				Notes:      util.Deref(order.Notes),
			})
		})
	}()
}

// onSaveRequested parses the raw field values, then delegates to the
// service. Parse failures mark the field without touching storage.
func (p *OrderFormPresenter) onSaveRequested() {
	if p.closed {
		return
	}
	p.view.ClearFieldErrors()

	data := p.view.FieldValues()

	parseFailed := false
	total, err := decimal.NewFromString(strings.TrimSpace(data.Total))
	if err != nil {
		p.view.SetFieldError(orderFieldNames["total"], "enter a valid amount, e.g. 149.90")
		parseFailed = true
	}

	var orderDate time.Time
	if dateText := strings.TrimSpace(data.Date); dateText != "" {
		orderDate, err = time.ParseInLocation(orderDateLayout, dateText, time.UTC)
		if err != nil {
			p.view.SetFieldError(orderFieldNames["date"], "enter a date as YYYY-MM-DD")
			parseFailed = true
		}
	}
	if parseFailed {
		p.view.ShowError("Please fix the highlighted fields.")
		return
	}

	status, _ := model.ParseOrderStatus(data.Status)
	o := &model.Order{
		ID:         p.orderID,
		Number:     strings.TrimSpace(data.Number),
		CustomerID: data.CustomerID,
		OrderDate:  orderDate,
		Total:      total,
		Status:     status,
		Notes:      util.OptionalField(data.Notes),
	}
	if p.loaded != nil {
		o.CreatedAt = p.loaded.CreatedAt
	}

	p.view.SetLoading(true)

	go func() {
		var err error
		if p.orderID == 0 {
			err = p.service.Create(context.Background(), o)
		} else {
			err = p.service.Update(context.Background(), o)
		}

		p.view.Post(func() {
			if p.closed {
				return
			}
			p.view.SetLoading(false)

			var vErr *service.ValidationError
			var cErr *service.ConflictError
			var nfErr *service.NotFoundError
			switch {
			case errors.As(err, &vErr):
				for field, message := range vErr.Fields {
					if name, ok := orderFieldNames[field]; ok {
						p.view.SetFieldError(name, message)
					}
				}
				p.view.ShowError("Please fix the highlighted fields.")
			case errors.As(err, &cErr):
				p.view.SetFieldError(orderFieldNames[cErr.Field], "already in use")
				p.view.ShowError(fmt.Sprintf("An order with number %q already exists.", cErr.Value))
			case errors.As(err, &nfErr):
				p.view.ShowError("Order not found. It may have been deleted.")
				p.view.CloseWithResult(false)
			case err != nil:
				p.log.Error("save order failed", zap.Int64("id", p.orderID), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
			default:
				p.view.CloseWithResult(true)
			}
		})
	}()
}

func (p *OrderFormPresenter) onCancelRequested() {
	if p.closed {
		return
	}
	p.view.CloseWithResult(false)
}
