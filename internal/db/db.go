package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Opts carries connection pool settings shared by both drivers.
type Opts struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Open connects to the configured database. driver must be one of
// DriverSQLite or DriverMySQL; dsn is a file path for sqlite and a
// go-sql-driver DSN for mysql.
func Open(driver, dsn string, opts Opts) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteConnection(dsn, opts)
	case DriverMySQL:
		return NewMySQLConnection(dsn, opts)
	default:
		return nil, fmt.Errorf("open database: unsupported driver %q", driver)
	}
}

func applyPool(db *sqlx.DB, opts Opts) {
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
}
