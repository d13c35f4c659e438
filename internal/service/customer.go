package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"crmdesk/internal/model"
	"crmdesk/internal/repository"
)

// customerSearchFields are the columns a list-screen search reaches.
var customerSearchFields = []string{"name", "email", "phone", "city", "country"}

type CustomerService interface {
	List(ctx context.Context) ([]model.Customer, error)
	ListActive(ctx context.Context) ([]model.Customer, error)
	Search(ctx context.Context, term string) ([]model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	GetWithOrders(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int64) error
}

type CustomerServiceImpl struct {
	uow *repository.UnitOfWorkFactory
	log *zap.Logger
}

func NewCustomerService(uow *repository.UnitOfWorkFactory, log *zap.Logger) *CustomerServiceImpl {
	return &CustomerServiceImpl{uow: uow, log: log}
}

var _ CustomerService = (*CustomerServiceImpl)(nil)

func (s *CustomerServiceImpl) List(ctx context.Context) ([]model.Customer, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Customers().GetAll(ctx)
}

func (s *CustomerServiceImpl) ListActive(ctx context.Context) ([]model.Customer, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Customers().GetActive(ctx)
}

// Search filters customers by term across the visible columns. A blank
// term returns the full list.
func (s *CustomerServiceImpl) Search(ctx context.Context, term string) ([]model.Customer, error) {
	term = strings.TrimSpace(term)

	u := s.uow.New()
	defer func() { _ = u.Close() }()

	if term == "" {
		return u.Customers().GetAll(ctx)
	}
	return u.Customers().SearchByField(ctx, term, customerSearchFields...)
}

func (s *CustomerServiceImpl) Get(ctx context.Context, id int64) (*model.Customer, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Customers().GetByID(ctx, id)
}

func (s *CustomerServiceImpl) GetWithOrders(ctx context.Context, id int64) (*model.Customer, error) {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	return u.Customers().GetWithOrders(ctx, id)
}

// Create validates the customer, rejects duplicate emails and persists
// the record. On success c.ID carries the generated key.
func (s *CustomerServiceImpl) Create(ctx context.Context, c *model.Customer) error {
	if fields := ValidateCustomer(c); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	u := s.uow.New()
	defer func() { _ = u.Close() }()

	taken, err := u.Customers().EmailExists(ctx, c.Email, 0)
	if err != nil {
		s.log.Error("email uniqueness check failed", zap.Error(err))
		return err
	}
	if taken {
		return &ConflictError{Entity: "customer", Field: "email", Value: c.Email}
	}

	now := time.Now().UTC().Truncate(time.Second)
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := u.Customers().Add(ctx, c); err != nil {
		s.log.Error("create customer failed", zap.Error(err))
		return err
	}
	if err := u.SaveChanges(ctx); err != nil {
		s.log.Error("create customer failed", zap.Error(err))
		return err
	}

	s.log.Info("customer created", zap.Int64("id", c.ID), zap.String("email", c.Email))
	return nil
}

// Update validates and persists changes to an existing customer. The
// stored created_at is preserved regardless of what the caller passed.
func (s *CustomerServiceImpl) Update(ctx context.Context, c *model.Customer) error {
	if fields := ValidateCustomer(c); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	u := s.uow.New()
	defer func() { _ = u.Close() }()

	existing, err := u.Customers().GetByID(ctx, c.ID)
	if err != nil {
		s.log.Error("load customer failed", zap.Int64("id", c.ID), zap.Error(err))
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "customer", ID: c.ID}
	}

	taken, err := u.Customers().EmailExists(ctx, c.Email, c.ID)
	if err != nil {
		s.log.Error("email uniqueness check failed", zap.Error(err))
		return err
	}
	if taken {
		return &ConflictError{Entity: "customer", Field: "email", Value: c.Email}
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := u.Customers().Update(ctx, c); err != nil {
		s.log.Error("update customer failed", zap.Int64("id", c.ID), zap.Error(err))
		return err
	}
	if err := u.SaveChanges(ctx); err != nil {
		s.log.Error("update customer failed", zap.Int64("id", c.ID), zap.Error(err))
		return err
	}

	s.log.Info("customer updated", zap.Int64("id", c.ID), zap.String("email", c.Email))
	return nil
}

// Delete removes the customer; its orders go with it via the cascade.
func (s *CustomerServiceImpl) Delete(ctx context.Context, id int64) error {
	u := s.uow.New()
	defer func() { _ = u.Close() }()

	existing, err := u.Customers().GetByID(ctx, id)
	if err != nil {
		s.log.Error("load customer failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "customer", ID: id}
	}

	orderCount, err := u.Orders().CountForCustomer(ctx, id)
	if err != nil {
		s.log.Error("count orders failed", zap.Int64("customer_id", id), zap.Error(err))
		return err
	}

	if err := u.Customers().Delete(ctx, id); err != nil {
		s.log.Error("delete customer failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := u.SaveChanges(ctx); err != nil {
		s.log.Error("delete customer failed", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.log.Info("customer deleted",
		zap.Int64("id", id),
		zap.String("email", existing.Email),
		zap.Int64("cascaded_orders", orderCount),
	)
	return nil
}
