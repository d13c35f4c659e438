package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crmdesk/internal/db"
	"crmdesk/internal/model"
)

func newFactory(t *testing.T) *UnitOfWorkFactory {
	t.Helper()

	path := filepath.Join(t.TempDir(), "repo_test.db")
	conn, err := db.NewSQLiteConnection(path, db.Opts{
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute,
		PingTimeout:     5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	require.NoError(t, db.EnsureSchema(context.Background(), conn, db.DriverSQLite))
	return NewUnitOfWorkFactory(conn)
}

func testCustomer(email string) *model.Customer {
	now := time.Now().UTC().Truncate(time.Second)
	phone := "+44 20 7946 0101"
	city := "London"
	country := "United Kingdom"
	return &model.Customer{
		Name:      "Ada Lovelace",
		Email:     email,
		Phone:     &phone,
		City:      &city,
		Country:   &country,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// mustAddCustomer inserts and commits a customer in its own scope.
func mustAddCustomer(t *testing.T, f *UnitOfWorkFactory, c *model.Customer) int64 {
	t.Helper()

	ctx := context.Background()
	u := f.New()
	defer func() { _ = u.Close() }()

	require.NoError(t, u.Customers().Add(ctx, c))
	require.NoError(t, u.SaveChanges(ctx))
	require.Positive(t, c.ID)
	return c.ID
}

func mustAddOrder(t *testing.T, f *UnitOfWorkFactory, o *model.Order) int64 {
	t.Helper()

	ctx := context.Background()
	u := f.New()
	defer func() { _ = u.Close() }()

	require.NoError(t, u.Orders().Add(ctx, o))
	require.NoError(t, u.SaveChanges(ctx))
	require.Positive(t, o.ID)
	return o.ID
}
