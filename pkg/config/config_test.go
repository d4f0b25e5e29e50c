package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
environment: test
server:
  port: 8080
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s
database:
  url: postgres://localhost:5432/portrisk
polygon:
  api_key: key-from-file
auth:
  jwt_secret: secret
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Server.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected read timeout %v", c.Server.ReadTimeout)
	}
	if c.Polygon.BaseURL != "https://api.polygon.io" {
		t.Fatalf("expected default base url, got %q", c.Polygon.BaseURL)
	}
	if c.Auth.TokenTTL != 10*time.Hour {
		t.Fatalf("expected default token ttl, got %v", c.Auth.TokenTTL)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://db:5432/override")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("POLYGON_API_KEY", "key-from-env")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.URL != "postgres://db:5432/override" {
		t.Fatalf("db url not overridden: %q", c.Database.URL)
	}
	if c.Database.User != "svc" || c.Database.Password != "pw" {
		t.Fatalf("db credentials not overridden")
	}
	if c.Polygon.APIKey != "key-from-env" {
		t.Fatalf("polygon key not overridden: %q", c.Polygon.APIKey)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", c.Kafka.Brokers)
	}
}

func TestValidateMissingEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: 1\n"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}
