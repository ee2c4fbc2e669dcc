package database

import (
	"Darugi/internal/api/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

func TestNewDialector_MySQL(t *testing.T) {
	d, err := newDialector(&config.DBConfig{Driver: DriverMySQL, DSN: "u:p@tcp(127.0.0.1:3306)/blog"})
	require.NoError(t, err)

	dialector, ok := d.(*mysql.Dialector)
	require.True(t, ok)
	assert.True(t, dialector.DSNConfig.ParseTime)
	assert.Contains(t, dialector.DSN, "parseTime=true")
	assert.Contains(t, dialector.DSN, "charset=utf8mb4")
}

func TestNewDialector_MySQLKeepsCharset(t *testing.T) {
	d, err := newDialector(&config.DBConfig{DSN: "u:p@tcp(127.0.0.1:3306)/blog?charset=utf8"})
	require.NoError(t, err)

	dsn := d.(*mysql.Dialector).DSN
	assert.Equal(t, 1, strings.Count(dsn, "charset="), dsn)
	assert.Contains(t, dsn, "charset=utf8")
	assert.NotContains(t, dsn, "utf8mb4")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDsnHasParam(t *testing.T) {
	assert.True(t, dsnHasParam("u:p@tcp(h:3306)/db?loc=Local&charset=utf8", "charset"))
	assert.False(t, dsnHasParam("u:p@tcp(h:3306)/db?loc=Local", "charset"))
	assert.False(t, dsnHasParam("u:p@tcp(h:3306)/db", "charset"))
}

func TestNewDialector_Postgres(t *testing.T) {
	d, err := newDialector(&config.DBConfig{Driver: DriverPostgres, DSN: "host=localhost user=blog dbname=blog"})
	require.NoError(t, err)
	_, ok := d.(*postgres.Dialector)
	assert.True(t, ok)
}

func TestNewDialector_Invalid(t *testing.T) {
	_, err := newDialector(&config.DBConfig{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = newDialector(&config.DBConfig{Driver: DriverMySQL, DSN: "not a dsn"})
	assert.Error(t, err)
}
