package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crmdesk/internal/db"
	"crmdesk/internal/model"
	"crmdesk/internal/repository"
)

func newFactory(t *testing.T) *repository.UnitOfWorkFactory {
	t.Helper()

	path := filepath.Join(t.TempDir(), "service_test.db")
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
	return repository.NewUnitOfWorkFactory(conn)
}

func newServices(t *testing.T) (*CustomerServiceImpl, *OrderServiceImpl) {
	t.Helper()

	f := newFactory(t)
	log := zap.NewNop()
	return NewCustomerService(f, log), NewOrderService(f, log)
}

func validCustomer(email string) *model.Customer {
	phone := "+44 20 7946 0101"
	city := "London"
	return &model.Customer{
		Name:   "Ada Lovelace",
		Email:  email,
		Phone:  &phone,
		City:   &city,
		Active: true,
	}
}

func validOrder(customerID int64, number string) *model.Order {
	return &model.Order{
		Number:     number,
		CustomerID: customerID,
		OrderDate:  time.Now().UTC().Truncate(time.Second),
		Total:      decimal.RequireFromString("149.90"),
		Status:     model.StatusPending,
	}
}

func fieldKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
