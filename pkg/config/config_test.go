package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hotel-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoragePostgres, cfg.App.Storage)
	assert.Equal(t, 5*time.Second, cfg.Occupancy.TxTimeout)
	assert.Equal(t, 10, cfg.Occupancy.MaxRooms)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_STORAGE", "memory")
	t.Setenv("OCCUPANCY_TX_TIMEOUT", "1500ms")
	t.Setenv("OCCUPANCY_MAX_ROOMS", "4")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.Equal(t, 1500*time.Millisecond, cfg.Occupancy.TxTimeout)
	assert.Equal(t, 4, cfg.Occupancy.MaxRooms)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("APP_STORAGE", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_MaxRoomsFueraDeRango(t *testing.T) {
	for _, v := range []string{"0", "11"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("OCCUPANCY_MAX_ROOMS", v)
			_, err := config.Load()
			assert.ErrorContains(t, err, "OCCUPANCY_MAX_ROOMS")
		})
	}

	t.Setenv("OCCUPANCY_MAX_ROOMS", "10")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Occupancy.MaxRooms)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "hotel", Password: "p@ss:w", DBName: "hotel", SSLMode: "disable"}
	assert.Equal(t, "postgres://hotel:p%40ss%3Aw@db:5432/hotel?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", db.ConnectionString())
}
