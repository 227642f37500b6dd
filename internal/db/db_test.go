package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"maison-storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBUser:     "test_user",
		DBPassword: "test_password",
		DBName:     "test_db",
		DBPort:     "5432",
	}

	expected := "host=localhost user=test_user password=test_password dbname=test_db port=5432 sslmode=disable connect_timeout=5"
	assert.Equal(t, expected, buildDSN(cfg))
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(context.Background(), &config.Config{}, "invalid_driver_name")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

// --- Stub driver for the ping path ---

type stubDriver struct {
	pingErr error
}

func (d *stubDriver) Open(name string) (driver.Conn, error) {
	return &stubConn{pingErr: d.pingErr}, nil
}

type stubConn struct {
	pingErr error
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *stubConn) Close() error                              { return nil }
func (c *stubConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }
func (c *stubConn) Ping(ctx context.Context) error            { return c.pingErr }

func init() {
	sql.Register("stub_driver_ok", &stubDriver{})
	sql.Register("stub_driver_down", &stubDriver{pingErr: errors.New("connection refused")})
}

func TestNewDatabase_Success(t *testing.T) {
	db, err := newDatabaseWithDriver(context.Background(), &config.Config{DBHost: "localhost"}, "stub_driver_ok")
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, "stub_driver_ok", db.DriverName())
	_ = db.Close()
}

func TestNewDatabase_PingFailure(t *testing.T) {
	db, err := newDatabaseWithDriver(context.Background(), &config.Config{DBHost: "localhost"}, "stub_driver_down")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}
