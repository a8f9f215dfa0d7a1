package config_test

import (
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.db")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")
	t.Setenv("EXTERNAL_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("HOTEL_TAX_RATE", "0.1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "replica.db", cfg.DB.Postgres.Read.Host)
	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.External.Kafka.Brokers)
	assert.Equal(t, "hotel.emergency", cfg.External.Kafka.Topics.Emergency)
	assert.InDelta(t, 0.1, cfg.Hotel.TaxRate, 1e-9)
	assert.Equal(t, "LKR", cfg.Hotel.Currency)
	assert.Equal(t, 300, cfg.Cache.TTL)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{
			name:    "missing secrets",
			env:     map[string]string{},
			message: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required",
		},
		{
			name:    "shared secret",
			env:     map[string]string{"JWT_ACCESS_SECRET": "same", "JWT_REFRESH_SECRET": "same"},
			message: "must use different secrets",
		},
		{
			name:    "tax rate out of range",
			env:     map[string]string{"JWT_ACCESS_SECRET": "a", "JWT_REFRESH_SECRET": "b", "HOTEL_TAX_RATE": "15"},
			message: "HOTEL_TAX_RATE",
		},
		{
			name:    "kafka without brokers",
			env:     map[string]string{"JWT_ACCESS_SECRET": "a", "JWT_REFRESH_SECRET": "b", "EXTERNAL_KAFKA_ENABLE": "true"},
			message: "EXTERNAL_KAFKA_BROKERS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_ACCESS_SECRET", "")
			t.Setenv("JWT_REFRESH_SECRET", "")

			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.ErrorContains(t, err, tt.message)
		})
	}
}
