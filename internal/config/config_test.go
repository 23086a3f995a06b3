package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/escrow-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, c config.Config)
		wantErr bool
	}{
		{
			name: "defaults with postgres credentials",
			env: map[string]string{
				"POSTGRES_USER":     "escrow",
				"POSTGRES_PASSWORD": "secret",
			},
			check: func(t *testing.T, c config.Config) {
				assert.Equal(t, "development", c.Env)
				assert.Equal(t, "postgres", c.Storage)
				assert.Equal(t, []string{"localhost:9092"}, c.Kafka.Brokers)
				assert.Equal(t, 3, c.Retry.MaxAttempts)
				assert.Equal(t, 5*time.Minute, c.Cache.TTL)
			},
		},
		{
			name:    "postgres without credentials",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "memory storage needs no postgres",
			env:  map[string]string{"STORAGE": "memory"},
			check: func(t *testing.T, c config.Config) {
				assert.Equal(t, "memory", c.Storage)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"STORAGE":                 "memory",
				"KAFKA_BROKERS":           "kafka-1:9092,kafka-2:9092",
				"CONFLICT_RETRY_ATTEMPTS": "5",
				"CACHE_TTL":               "30s",
				"ENV":                     "production",
			},
			check: func(t *testing.T, c config.Config) {
				assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
				assert.Equal(t, 5, c.Retry.MaxAttempts)
				assert.Equal(t, 30*time.Second, c.Cache.TTL)
				assert.Equal(t, "production", c.Env)
			},
		},
		{
			name:    "unknown env",
			env:     map[string]string{"STORAGE": "memory", "ENV": "dev"},
			wantErr: true,
		},
		{
			name:    "unknown storage",
			env:     map[string]string{"STORAGE": "sqlite"},
			wantErr: true,
		},
		{
			name:    "bad broker address",
			env:     map[string]string{"STORAGE": "memory", "KAFKA_BROKERS": "not a broker"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			c := config.New()
			err := c.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "HOST", "PORT", "STORAGE", "KAFKA_BROKERS", "CACHE_TTL",
		"CONFLICT_RETRY_ATTEMPTS", "POSTGRES_USER", "POSTGRES_PASSWORD",
	} {
		// Setenv registers the restore, Unsetenv makes the key absent
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
