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

type CustomersRepository interface {
	GetAll(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetWithOrders(ctx context.Context, id int64) (*model.Customer, error)
	SearchByField(ctx context.Context, term string, fields ...string) ([]model.Customer, error)
	GetActive(ctx context.Context) ([]model.Customer, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Add(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int64) error
}

// customerSearchColumns whitelists the fields SearchByField may touch.
var customerSearchColumns = map[string]string{
	"name":    "name",
	"email":   "email",
	"phone":   "phone",
	"city":    "city",
	"country": "country",
}

type CustomersRepositoryImpl struct {
	u *UnitOfWork
}

func NewCustomersRepository(u *UnitOfWork) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{u: u}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

const customerColumns = `id, name, email, phone, address, city, country, active, created_at, updated_at`

func (r *CustomersRepositoryImpl) GetAll(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := sqlx.SelectContext(ctx, r.u.reader(), &out, `
		SELECT `+customerColumns+`
		  FROM customers
		 ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return out, nil
}

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := sqlx.GetContext(ctx, r.u.reader(), &c, `
		SELECT `+customerColumns+`
		  FROM customers
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select customer %d: %w", id, err)
	}
	return &c, nil
}

// GetWithOrders loads the customer together with its orders, newest first.
func (r *CustomersRepositoryImpl) GetWithOrders(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}

	err = sqlx.SelectContext(ctx, r.u.reader(), &c.Orders, `
		SELECT id, order_number, customer_id, order_date, total_amount, status, notes, created_at
		  FROM orders
		 WHERE customer_id = ?
		 ORDER BY order_date DESC, id DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select orders of customer %d: %w", id, err)
	}
	return c, nil
}

// SearchByField filters at the storage layer with one OR-combined LIKE query
// over the requested whitelisted fields.
func (r *CustomersRepositoryImpl) SearchByField(ctx context.Context, term string, fields ...string) ([]model.Customer, error) {
	if len(fields) == 0 {
		return r.GetAll(ctx)
	}

	likes := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	pattern := "%" + term + "%"
	for _, f := range fields {
		col, ok := customerSearchColumns[f]
		if !ok {
			return nil, fmt.Errorf("search customers: unknown field %q", f)
		}
		likes = append(likes, col+" LIKE ?")
		args = append(args, pattern)
	}

	var out []model.Customer
	q := `SELECT ` + customerColumns + ` FROM customers WHERE ` + strings.Join(likes, " OR ") + ` ORDER BY name, id`
	if err := sqlx.SelectContext(ctx, r.u.reader(), &out, q, args...); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return out, nil
}

func (r *CustomersRepositoryImpl) GetActive(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := sqlx.SelectContext(ctx, r.u.reader(), &out, `
		SELECT `+customerColumns+`
		  FROM customers
		 WHERE active = ?
		 ORDER BY name, id
	`, true)
	if err != nil {
		return nil, fmt.Errorf("select active customers: %w", err)
	}
	return out, nil
}

// EmailExists reports whether another customer already uses the email.
// The comparison is case-insensitive; excludeID skips the row being updated.
func (r *CustomersRepositoryImpl) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var one int
	err := sqlx.GetContext(ctx, r.u.reader(), &one, `
		SELECT 1
		  FROM customers
		 WHERE LOWER(email) = LOWER(?) AND id <> ?
		 LIMIT 1
	`, email, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check email %q: %w", email, err)
	}
	return true, nil
}

// Add inserts the customer and assigns its generated ID.
func (r *CustomersRepositoryImpl) Add(ctx context.Context, c *model.Customer) error {
	ext, err := r.u.writer(ctx)
	if err != nil {
		return err
	}
	res, err := ext.ExecContext(ctx, `
		INSERT INTO customers (name, email, phone, address, city, country, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Name, c.Email, c.Phone, c.Address, c.City, c.Country, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert customer id: %w", err)
	}
	c.ID = id
	return nil
}

func (r *CustomersRepositoryImpl) Update(ctx context.Context, c *model.Customer) error {
	ext, err := r.u.writer(ctx)
	if err != nil {
		return err
	}
	_, err = ext.ExecContext(ctx, `
		UPDATE customers
		   SET name = ?, email = ?, phone = ?, address = ?, city = ?, country = ?, active = ?, updated_at = ?
		 WHERE id = ?
	`, c.Name, c.Email, c.Phone, c.Address, c.City, c.Country, c.Active, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update customer %d: %w", c.ID, err)
	}
	return nil
}

// Delete removes the customer row; orders follow via ON DELETE CASCADE.
func (r *CustomersRepositoryImpl) Delete(ctx context.Context, id int64) error {
	ext, err := r.u.writer(ctx)
	if err != nil {
		return err
	}
	if _, err := ext.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	return nil
}
