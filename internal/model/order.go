package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string { return string(s) }

// Valid reports whether s is one of the well-known statuses. The column is
// free text, so unknown values are stored as-is; Valid only drives UI pickers.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseOrderStatus normalizes input; empty => pending.
// Returns (value, true) if it is a well-known status; otherwise (input, false).
func ParseOrderStatus(s string) (OrderStatus, bool) {
	v := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return StatusPending, true
	}
	return v, v.Valid()
}

// AllStatuses lists the well-known statuses in picker order.
func AllStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

type Order struct {
	ID         int64           `db:"id"`
	Number     string          `db:"order_number"` // unique natural key
	CustomerID int64           `db:"customer_id"`
	OrderDate  time.Time       `db:"order_date"`
	Total      decimal.Decimal `db:"total_amount"`
	Status     OrderStatus     `db:"status"`
	Notes      *string         `db:"notes"` // nullable
	CreatedAt  time.Time       `db:"created_at"`

	// CustomerName is a read-only join column filled by list queries.
	CustomerName string `db:"customer_name"`
}
