package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "inventory",
			TimeoutSeconds: 2,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)

		var one int
		require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
		assert.Equal(t, 1, one)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})
}

func TestConfig_IsValidDriver(t *testing.T) {
	assert.True(t, Config{Driver: DriverMySQL}.IsValidDriver())
	assert.True(t, Config{Driver: DriverSQLite}.IsValidDriver())
	assert.False(t, Config{Driver: "postgres"}.IsValidDriver())
}
