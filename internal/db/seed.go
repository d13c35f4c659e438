package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"crmdesk/internal/model"
)

type demoOrder struct {
	number  string
	daysAgo int
	total   string
	status  model.OrderStatus
	notes   *string
}

type demoCustomer struct {
	name    string
	email   string
	phone   *string
	address *string
	city    *string
	country *string
	active  bool
	orders  []demoOrder
}

func demoData() []demoCustomer {
	return []demoCustomer{
		{
			name: "Ada Lovelace", email: "ada.lovelace@example.com",
			phone: strPtr("+44 20 7946 0101"), address: strPtr("12 St James's Square"),
			city: strPtr("London"), country: strPtr("United Kingdom"), active: true,
			orders: []demoOrder{
				{number: "ORD-1001", daysAgo: 3, total: "149.90", status: model.StatusShipped},
				{number: "ORD-1002", daysAgo: 1, total: "880.00", status: model.StatusPending, notes: strPtr("Priority handling")},
			},
		},
		{
			name: "Grace Hopper", email: "grace.hopper@example.com",
			phone: strPtr("+1 202 555 0143"), address: strPtr("1401 Wilson Blvd"),
			city: strPtr("Arlington"), country: strPtr("United States"), active: true,
			orders: []demoOrder{
				{number: "ORD-1003", daysAgo: 12, total: "2450.00", status: model.StatusDelivered},
			},
		},
		{
			name: "Alan Turing", email: "alan.turing@example.com",
			city: strPtr("Manchester"), country: strPtr("United Kingdom"), active: true,
			orders: []demoOrder{
				{number: "ORD-1004", daysAgo: 7, total: "320.75", status: model.StatusProcessing},
				{number: "ORD-1005", daysAgo: 2, total: "54.10", status: model.StatusPending},
			},
		},
		{
			name: "Margaret Hamilton", email: "margaret.hamilton@example.com",
			phone: strPtr("+1 617 555 0188"), address: strPtr("300 Technology Square"),
			city: strPtr("Boston"), country: strPtr("United States"), active: true,
			orders: []demoOrder{
				{number: "ORD-1006", daysAgo: 30, total: "1199.00", status: model.StatusDelivered, notes: strPtr("Gift wrap")},
			},
		},
		{
			name: "Edsger Dijkstra", email: "edsger.dijkstra@example.com",
			city: strPtr("Nuenen"), country: strPtr("Netherlands"), active: false,
			orders: []demoOrder{
				{number: "ORD-1007", daysAgo: 90, total: "75.00", status: model.StatusCancelled},
			},
		},
	}
}

// Seed inserts the demo customers and orders when the customers table is
// empty. It reports whether anything was written, so callers can log a
// no-op separately.
func Seed(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM customers"); err != nil {
		return false, fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC().Truncate(time.Second)
	for _, c := range demoData() {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO customers (name, email, phone, address, city, country, active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.name, c.email, c.phone, c.address, c.city, c.country, c.active, now, now,
		)
		if err != nil {
			return false, fmt.Errorf("seed customer %s: %w", c.email, err)
		}
		customerID, err := res.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("seed customer %s id: %w", c.email, err)
		}

		for _, o := range c.orders {
			total, err := decimal.NewFromString(o.total)
			if err != nil {
				return false, fmt.Errorf("seed order %s total: %w", o.number, err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO orders (order_number, customer_id, order_date, total_amount, status, notes, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				o.number, customerID, now.AddDate(0, 0, -o.daysAgo), total, o.status.String(), o.notes, now,
			)
			if err != nil {
				return false, fmt.Errorf("seed order %s: %w", o.number, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed transaction: %w", err)
	}
	return true, nil
}

func strPtr(s string) *string { return &s }
