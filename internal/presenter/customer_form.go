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
	"crmdesk/internal/util"
)

// customerFieldNames translates the domain validation keys into the
// names the form's inputs are registered under.
var customerFieldNames = map[string]string{
	"name":    "name",
	"email":   "email",
	"phone":   "phone",
	"address": "address",
	"city":    "city",
	"country": "country",
}

// CustomerFormPresenter drives the add/edit customer form. customerID
// zero means a new record.
type CustomerFormPresenter struct {
	view    CustomerFormView
	service service.CustomerService
	log     *zap.Logger

	subs []*event.Subscription

	// UI-goroutine state
	closed     bool
	customerID int64
	loaded     *model.Customer
}

func NewCustomerFormPresenter(view CustomerFormView, svc service.CustomerService, log *zap.Logger, customerID int64) *CustomerFormPresenter {
	p := &CustomerFormPresenter{
		view:       view,
		service:    svc,
		log:        log,
		customerID: customerID,
	}

	p.subs = append(p.subs,
		view.LoadRequested().Subscribe(func(struct{}) { p.onLoadRequested() }),
		view.SaveRequested().Subscribe(func(struct{}) { p.onSaveRequested() }),
		view.CancelRequested().Subscribe(func(struct{}) { p.onCancelRequested() }),
	)
	return p
}

// Close detaches from the view. Safe to call more than once.
func (p *CustomerFormPresenter) Close() {
	if p.closed {
		return
	}
	p.closed = true

	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
}

func (p *CustomerFormPresenter) onLoadRequested() {
	if p.closed {
		return
	}
	if p.customerID == 0 {
		p.view.SetEditMode(false)
		p.view.SetFields(CustomerFormData{Active: true})
		return
	}

	p.view.SetEditMode(true)
	p.view.SetLoading(true)

	id := p.customerID
	go func() {
		c, err := p.service.Get(context.Background(), id)

		p.view.Post(func() {
			if p.closed {
				return
			}
			p.view.SetLoading(false)

			if err != nil {
				p.log.Error("load customer failed", zap.Int64("id", id), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
				p.view.CloseWithResult(false)
				return
			}
			if c == nil {
				p.view.ShowError("Customer not found. It may have been deleted.")
				p.view.CloseWithResult(false)
				return
			}

			p.loaded = c
			p.view.SetFields(CustomerFormData{
				Name:    c.Name,
				Email:   c.Email,
				Phone:   util.Deref(c.Phone),
				Address: util.Deref(c.Address),
				City:    util.Deref(c.City),
				Country: util.Deref(c.Country),
				Active:  c.Active,
			})
		})
	}()
}

func (p *CustomerFormPresenter) onSaveRequested() {
	if p.closed {
		return
	}
	p.view.ClearFieldErrors()

	data := p.view.FieldValues()
	c := &model.Customer{
		ID:      p.customerID,
		Name:    strings.TrimSpace(data.Name),
		Email:   strings.TrimSpace(data.Email),
		Phone:   util.OptionalField(data.Phone),
		Address: util.OptionalField(data.Address),
		City:    util.OptionalField(data.City),
		Country: util.OptionalField(data.Country),
		Active:  data.Active,
	}
	if p.loaded != nil {
		c.CreatedAt = p.loaded.CreatedAt
	}

	p.view.SetLoading(true)

	go func() {
		var err error
		if p.customerID == 0 {
			err = p.service.Create(context.Background(), c)
		} else {
			err = p.service.Update(context.Background(), c)
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
					if name, ok := customerFieldNames[field]; ok {
						p.view.SetFieldError(name, message)
					}
				}
				p.view.ShowError("Please fix the highlighted fields.")
			case errors.As(err, &cErr):
				p.view.SetFieldError(customerFieldNames[cErr.Field], "already in use")
				p.view.ShowError(fmt.Sprintf("A customer with email %q already exists.", cErr.Value))
			case errors.As(err, &nfErr):
				p.view.ShowError("Customer not found. It may have been deleted.")
				p.view.CloseWithResult(false)
			case err != nil:
				p.log.Error("save customer failed", zap.Int64("id", p.customerID), zap.Error(err))
				p.view.ShowError(genericFailureMessage)
			default:
				p.view.CloseWithResult(true)
			}
		})
	}()
}

func (p *CustomerFormPresenter) onCancelRequested() {
	if p.closed {
		return
	}
	p.view.CloseWithResult(false)
}
