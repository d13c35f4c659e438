package model

import "time"

type Customer struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"` // unique natural key
	Phone     *string   `db:"phone"` // nullable
	Address   *string   `db:"address"`
	City      *string   `db:"city"`
	Country   *string   `db:"country"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Orders is populated by GetWithOrders only.
	Orders []Order `db:"-"`
}
