package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDatabaseConfig_DSN tests the DSN() method
func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "standard configuration",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable",
		},
		{
			name: "with special characters",
			config: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				User:     "admin",
				Password: "p@ss w0rd!",
				DBName:   "production",
				SSLMode:  "require",
			},
			expected: "host=db.example.com port=5433 user=admin password='p@ss w0rd!' dbname=production sslmode=require",
		},
		{
			name: "with single quotes in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "pass'word",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password='pass''word' dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.DSN()
			assert.Equal(t, tt.expected, result, "DSN should match expected format")
		})
	}
}

// TestServerConfig_Address tests the Address() method
func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name     string
		config   ServerConfig
		expected string
	}{
		{
			name: "standard localhost",
			config: ServerConfig{
				Host: "0.0.0.0",
				Port: 8000,
			},
			expected: "0.0.0.0:8000",
		},
		{
			name: "custom host and port",
			config: ServerConfig{
				Host: "example.com",
				Port: 3000,
			},
			expected: "example.com:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.Address()
			assert.Equal(t, tt.expected, result, "Address should match expected format")
		})
	}
}

// TestRedisConfig_Address tests the Redis Address() method
func TestRedisConfig_Address(t *testing.T) {
	cfg := RedisConfig{Host: "127.0.0.1", Port: 6379}
	assert.Equal(t, "127.0.0.1:6379", cfg.Address())
}

// TestAuthConfig_TTLs tests the duration helpers
func TestAuthConfig_TTLs(t *testing.T) {
	cfg := AuthConfig{
		SessionTTLHours:     24,
		AccessTTLMinutes:    15,
		ChallengeTTLSeconds: 60,
	}

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 60*time.Second, cfg.ChallengeTTL())
}

// TestLoad tests the Load function with valid and invalid YAML files
func TestLoad(t *testing.T) {
	t.Run("valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")

		configContent := `
app:
  name: "test-app"

server:
  host: "localhost"
  port: 8000

auth:
  issuer: "sessionly"
  session_ttl_hours: 24
  access_ttl_minutes: 15
  challenge_ttl_seconds: 60

database:
  host: "localhost"
  port: 5432
  user: "testuser"
  password: "testpass"
  dbname: "testdb"
  sslmode: "disable"

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0

logging:
  level: "info"
`
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8000, cfg.Server.Port)
		assert.Equal(t, "sessionly", cfg.Auth.Issuer)
		assert.Equal(t, 24, cfg.Auth.SessionTTLHours)
		assert.Equal(t, 15, cfg.Auth.AccessTTLMinutes)
		assert.Equal(t, 60, cfg.Auth.ChallengeTTLSeconds)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 0, cfg.Redis.DB)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("non-existent file", func(t *testing.T) {
		cfg, err := Load("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yaml")

		invalidContent := `
app:
  name: "test-app"
  invalid: [unclosed array
`
		err := os.WriteFile(configPath, []byte(invalidContent), 0644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("partial config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "partial.yaml")

		partialContent := `
app:
  name: "partial-app"
server:
  host: "localhost"
`
		err := os.WriteFile(configPath, []byte(partialContent), 0644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "partial-app", cfg.App.Name)
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 0, cfg.Server.Port) // Default zero value
	})
}

// TestLoadEnv tests environment defaults and validation
func TestLoadEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("CONFIG_PATH", "")

		env := LoadEnv()
		assert.Equal(t, EnvironmentDevelopment, env.Environment)
		assert.Equal(t, "config.yaml", env.ConfigPath)
	})

	t.Run("invalid environment falls back to development", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "staging")

		env := LoadEnv()
		assert.Equal(t, EnvironmentDevelopment, env.Environment)
	})

	t.Run("production", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", " Production ")

		env := LoadEnv()
		assert.Equal(t, EnvironmentProduction, env.Environment)
	})
}

// TestLoadRSAPrivateKey tests key loading behavior per environment
func TestLoadRSAPrivateKey(t *testing.T) {
	t.Run("empty key in development generates one", func(t *testing.T) {
		key, err := LoadRSAPrivateKey("", EnvironmentDevelopment)
		require.NoError(t, err)
		require.NotNil(t, key)
	})

	t.Run("empty key in production fails", func(t *testing.T) {
		key, err := LoadRSAPrivateKey("", EnvironmentProduction)
		assert.Error(t, err)
		assert.Nil(t, key)
	})

	t.Run("garbage PEM fails", func(t *testing.T) {
		key, err := LoadRSAPrivateKey("not a pem", EnvironmentProduction)
		assert.Error(t, err)
		assert.Nil(t, key)
	})
}
