package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"crmdesk/internal/model"
	"crmdesk/internal/repository"
	"crmdesk/internal/util"
)

// orderSearchFields are the columns a list-screen search reaches,
// including the owning customer's name through the join.
var orderSearchFields = []string{"number", "status", "notes", "customer"}

type OrderService interface {
	List(ctx context.Context) ([]model.Order, error)
	Search(ctx context.Context, term string) ([]model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	GetWithCustomer(ctx context.Context, id int64) (*model.Order, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ActiveCustomers(ctx context.Context) ([]model.Customer, error)
	SuggestNumber() string
	Create(ctx context.Context, o *model.Order) error
	Update(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id int64) error
}

type OrderServiceImpl struct {
	uow *repository.UnitOfWorkFactory
	log *zap.Logger
}

func NewOrderService(uow *repository.UnitOfWorkFactory, log *zap.Logger) *OrderServiceImpl {
	return &OrderServiceImpl{uow: uow, log: log}
}

var _ OrderService = (*OrderServiceImpl)(nil)

func (s *OrderServiceImpl) List(ctx context.Context) ([]model.Order, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Orders().GetAll(ctx)
}

// Search filters orders by term; a blank term returns the full list.
func (s *OrderServiceImpl) Search(ctx context.Context, term string) ([]model.Order, error) {
	term = strings.TrimSpace(term)

	u := s.uow.New()
	defer func() { _ = u.Close() }()

	if term == "" {
		return u.Orders().GetAll(ctx)
	}
	return u.Orders().SearchByField(ctx, term, orderSearchFields...)
}

func (s *OrderServiceImpl) Get(ctx context.Context, id int64) (*model.Order, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Orders().GetByID(ctx, id)
}

func (s *OrderServiceImpl) GetWithCustomer(ctx context.Context, id int64) (*model.Order, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Orders().GetWithCustomer(ctx, id)
}

func (s *OrderServiceImpl) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Orders().ListByCustomer(ctx, customerID)
}

// ActiveCustomers feeds the order form's customer picker.
func (s *OrderServiceImpl) ActiveCustomers(ctx context.Context) ([]model.Customer, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Customers().GetActive(ctx)
}

// SuggestNumber proposes a fresh unique order number for new orders.
func (s *OrderServiceImpl) SuggestNumber() string {
	return util.NewOrderNumber()
}

// Create validates the order, checks that its customer exists and the
// number is free, then persists it. On success o.ID carries the
// generated key.
func (s *OrderServiceImpl) Create(ctx context.Context, o *model.Order) error {
	fields := ValidateOrder(o)

	u := s.uow.New()
	defer func() { _ = u.Close() }()

	if _, ok := fields["customer"]; !ok {
		owner, err := u.Customers().GetByID(ctx, o.CustomerID)
		if err != nil {
			s.log.Error("load customer failed", zap.Int64("id", o.CustomerID), zap.Error(err))
			return err
		}
		if owner == nil {
			fields["customer"] = "customer does not exist"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	taken, err := u.Orders().NumberExists(ctx, o.Number, 0)
	if err != nil {
		s.log.Error("number uniqueness check failed", zap.Error(err))
		return err
	}
	if taken {
		return &ConflictError{Entity: "order", Field: "number", Value: o.Number}
	}

	if o.Status == "" {
		o.Status = model.StatusPending
	}
	o.CreatedAt = time.Now().UTC().Truncate(time.Second)

	if err := u.Orders().Add(ctx, o); err != nil {
		s.log.Error("create order failed", zap.Error(err))
		return err
	}
	if err := u.SaveChanges(ctx); err != nil {
		s.log.Error("create order failed", zap.Error(err))
		return err
	}

	s.log.Info("order created",
		zap.Int64("id", o.ID),
		zap.String("number", o.Number),
		zap.Int64("customer_id", o.CustomerID),
		zap.String("total", o.Total.String()),
	)
	return nil
}

// Update validates and persists changes to an existing order. The
// checks and the write share one explicit transaction so a concurrent
// delete cannot slip between them.
func (s *OrderServiceImpl) Update(ctx context.Context, o *model.Order) error {
	fields := ValidateOrder(o)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	u := s.uow.New()
	defer func() { _ = u.Close() }()

	if err := u.BeginTransaction(ctx); err != nil {
		return err
	}

	existing, err := u.Orders().GetByID(ctx, o.ID)
	if err != nil {
		s.log.Error("load order failed", zap.Int64("id", o.ID), zap.Error(err))
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "order", ID: o.ID}
	}

	owner, err := u.Customers().GetByID(ctx, o.CustomerID)
	if err != nil {
		s.log.Error("load customer failed", zap.Int64("id", o.CustomerID), zap.Error(err))
		return err
	}
	if owner == nil {
		return &ValidationError{Fields: map[string]string{"customer": "customer does not exist"}}
	}

	taken, err := u.Orders().NumberExists(ctx, o.Number, o.ID)
	if err != nil {
		s.log.Error("number uniqueness check failed", zap.Error(err))
		return err
	}
	if taken {
		return &ConflictError{Entity: "order", Field: "number", Value: o.Number}
	}

	o.CreatedAt = existing.CreatedAt

	if err := u.Orders().Update(ctx, o); err != nil {
		s.log.Error("update order failed", zap.Int64("id", o.ID), zap.Error(err))
		return err
	}
	if err := u.Commit(); err != nil {
		s.log.Error("update order failed", zap.Int64("id", o.ID), zap.Error(err))
		return err
	}

	s.log.Info("order updated", zap.Int64("id", o.ID), zap.String("number", o.Number))
	return nil
}

func (s *OrderServiceImpl) Delete(ctx context.Context, id int64) error {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	existing, err := u.Orders().GetByID(ctx, id)
	if err != nil {
		s.log.Error("load order failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "order", ID: id}
	}

	if err := u.Orders().Delete(ctx, id); err != nil {
		s.log.Error("delete order failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := u.SaveChanges(ctx); err != nil {
		s.log.Error("delete order failed", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.log.Info("order deleted", zap.Int64("id", id), zap.String("number", existing.Number))
	return nil
}
