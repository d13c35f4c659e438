package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"crmdesk/internal/model"
)

type OrdersRepository interface {
	GetAll(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetWithCustomer(ctx context.Context, id int64) (*model.Order, error)
	SearchByField(ctx context.Context, term string, fields ...string) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	CountForCustomer(ctx context.Context, customerID int64) (int64, error)
	NumberExists(ctx context.Context, number string, excludeID int64) (bool, error)
	Add(ctx context.Context, o *model.Order) error
	Update(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id int64) error
}

// orderSearchColumns whitelists the fields SearchByField may touch.
// "customer" reaches through the join to the owning customer's name.
var orderSearchColumns = map[string]string{
	"number":   "o.order_number",
	"status":   "o.status",
	"notes":    "o.notes",
	"customer": "c.name",
}

type OrdersRepositoryImpl struct {
	u *UnitOfWork
}

func NewOrdersRepository(u *UnitOfWork) *OrdersRepositoryImpl {
	return &OrdersRepositoryImpl{u: u}
}

var _ OrdersRepository = (*OrdersRepositoryImpl)(nil)

const orderColumns = `o.id, o.order_number, o.customer_id, o.order_date, o.total_amount, o.status, o.notes, o.created_at`

const orderJoin = `
		  FROM orders o
		  JOIN customers c ON c.id = o.customer_id`

func (r *OrdersRepositoryImpl) GetAll(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := sqlx.SelectContext(ctx, r.u.reader(), &out, `
		SELECT `+orderColumns+`, c.name AS customer_name`+orderJoin+`
		 ORDER BY o.order_date DESC, o.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	return out, nil
}

func (r *OrdersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := sqlx.GetContext(ctx, r.u.reader(), &o, `
		SELECT id, order_number, customer_id, order_date, total_amount, status, notes, created_at
		  FROM orders
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order %d: %w", id, err)
	}
	return &o, nil
}

// GetWithCustomer loads the order with the owning customer's name resolved.
func (r *OrdersRepositoryImpl) GetWithCustomer(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := sqlx.GetContext(ctx, r.u.reader(), &o, `
		SELECT `+orderColumns+`, c.name AS customer_name`+orderJoin+`
		 WHERE o.id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order %d: %w", id, err)
	}
	return &o, nil
}

// SearchByField filters at the storage layer with one OR-combined LIKE query
// over the requested whitelisted fields.
func (r *OrdersRepositoryImpl) SearchByField(ctx context.Context, term string, fields ...string) ([]model.Order, error) {
	if len(fields) == 0 {
		return r.GetAll(ctx)
	}

	likes := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	pattern := "%" + term + "%"
	for _, f := range fields {
		col, ok := orderSearchColumns[f]
		if !ok {
			return nil, fmt.Errorf("search orders: unknown field %q", f)
		}
		likes = append(likes, col+" LIKE ?")
		args = append(args, pattern)
	}

	var out []model.Order
	q := `SELECT ` + orderColumns + `, c.name AS customer_name` + orderJoin + `
		 WHERE ` + strings.Join(likes, " OR ") + `
		 ORDER BY o.order_date DESC, o.id DESC`
	if err := sqlx.SelectContext(ctx, r.u.reader(), &out, q, args...); err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	return out, nil
}

func (r *OrdersRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	var out []model.Order
	err := sqlx.SelectContext(ctx, r.u.reader(), &out, `
		SELECT id, order_number, customer_id, order_date, total_amount, status, notes, created_at
		  FROM orders
		 WHERE customer_id = ?
		 ORDER BY order_date DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("select orders of customer %d: %w", customerID, err)
	}
	return out, nil
}

func (r *OrdersRepositoryImpl) CountForCustomer(ctx context.Context, customerID int64) (int64, error) {
	var n int64
	err := sqlx.GetContext(ctx, r.u.reader(), &n, `
		SELECT COUNT(*) FROM orders WHERE customer_id = ?
	`, customerID)
	if err != nil {
		return 0, fmt.Errorf("count orders of customer %d: %w", customerID, err)
	}
	return n, nil
}

// NumberExists reports whether another order already uses the number;
// excludeID skips the row being updated.
func (r *OrdersRepositoryImpl) NumberExists(ctx context.Context, number string, excludeID int64) (bool, error) {
	var one int
	err := sqlx.GetContext(ctx, r.u.reader(), &one, `
		SELECT 1
		  FROM orders
		 WHERE order_number = ? AND id <> ?
		 LIMIT 1
	`, number, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check order number %q: %w", number, err)
	}
	return true, nil
}

// Add inserts the order and assigns its generated ID.
func (r *OrdersRepositoryImpl) Add(ctx context.Context, o *model.Order) error {
	ext, err := r.u.writer(ctx)
	if err != nil {
		return err
	}
	res, err := ext.ExecContext(ctx, `
		INSERT INTO orders (order_number, customer_id, order_date, total_amount, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, o.Number, o.CustomerID, o.OrderDate, o.Total, o.Status.String(), o.Notes, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert order id: %w", err)
	}
	o.ID = id
	return nil
}

func (r *OrdersRepositoryImpl) Update(ctx context.Context, o *model.Order) error {
	ext, err := r.u.writer(ctx)
	if err != nil {
		return err
	}
	_, err = ext.ExecContext(ctx, `
		UPDATE orders
		   SET order_number = ?, customer_id = ?, order_date = ?, total_amount = ?, status = ?, notes = ?
		 WHERE id = ?
	`, o.Number, o.CustomerID, o.OrderDate, o.Total, o.Status.String(), o.Notes, o.ID)
	if err != nil {
		return fmt.Errorf("update order %d: %w", o.ID, err)
	}
	return nil
}

func (r *OrdersRepositoryImpl) Delete(ctx context.Context, id int64) error {
	ext, err := r.u.writer(ctx)
	if err != nil {
		return err
	}
	if _, err := ext.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return nil
}
