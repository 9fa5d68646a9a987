package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestReservationConfig_Defaults(t *testing.T) {
	cfg := ReservationConfig{}

	assert.Equal(t, domain.DefaultHoldTTL, cfg.DefaultHoldTTL())
	assert.Equal(t, domain.MaxHoldTTL, cfg.MaxHoldTTL())
	assert.Equal(t, domain.DefaultSweepInterval, cfg.SweepInterval())
}

func TestReservationConfig_ExplicitValues(t *testing.T) {
	cfg := ReservationConfig{
		DefaultHoldTTLMinutes: 5,
		MaxHoldTTLMinutes:     20,
		SweepIntervalSeconds:  30,
	}

	assert.Equal(t, 5*time.Minute, cfg.DefaultHoldTTL())
	assert.Equal(t, 20*time.Minute, cfg.MaxHoldTTL())
	assert.Equal(t, 30*time.Second, cfg.SweepInterval())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "reservation",
		Password: "secret",
		DBName:   "reservations",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=reservation password=secret dbname=reservations sslmode=disable",
		cfg.DSN())
}
