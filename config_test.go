package influxc

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8086 {
		t.Errorf("default server = %+v", cfg.Server)
	}
	if cfg.Server.SSL {
		t.Error("default server enables SSL")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v", cfg.Timeout)
	}
	if cfg.UserAgent != "influxc" {
		t.Errorf("default user agent = %q", cfg.UserAgent)
	}
	if cfg.Batch.BatchSize != 1000 || cfg.Batch.FlushInterval != 10*time.Second {
		t.Errorf("default batch config = %+v", cfg.Batch)
	}
	if !cfg.Credentials.IsZero() {
		t.Error("default config carries credentials")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "influxc.yaml")
	data := `
server:
  host: tsdb.example.com
  port: 8087
  ssl: true
credentials:
  user: writer
  password: hunter2
timeout: 5s
batch:
  batch_size: 250
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Host != "tsdb.example.com" || cfg.Server.Port != 8087 || !cfg.Server.SSL {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Credentials.User != "writer" || cfg.Credentials.Password != "hunter2" {
		t.Errorf("credentials = %+v", cfg.Credentials)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.Batch.BatchSize != 250 {
		t.Errorf("batch size = %d", cfg.Batch.BatchSize)
	}
	// Absent fields keep their defaults.
	if cfg.Batch.FlushInterval != 10*time.Second {
		t.Errorf("flush interval = %v, want default", cfg.Batch.FlushInterval)
	}
	if cfg.UserAgent != "influxc" {
		t.Errorf("user agent = %q, want default", cfg.UserAgent)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		s    Server
		want string
	}{
		{Server{Host: "localhost", Port: 8086}, "http://localhost:8086"},
		{Server{Host: "db.internal", Port: 443, SSL: true}, "https://db.internal:443"},
		{Server{Host: "::1", Port: 8086}, "http://[::1]:8086"},
	}
	for _, tt := range tests {
		if got := tt.s.URL(); got != tt.want {
			t.Errorf("URL(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
