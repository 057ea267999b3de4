package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_HOST", "")
	t.Setenv("CATEGORIZER_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("default PG_HOST = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Categorizer.Timeout.Seconds() != 30 {
		t.Errorf("default categorizer timeout = %v, want 30s", cfg.Categorizer.Timeout)
	}
	if cfg.Categorizer.Model == "" {
		t.Error("expected a default categorizer model")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p",
		DBName: "spendsense", SSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=spendsense sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}

	d.URL = "postgres://u:p@db/spendsense"
	if got := d.DSN(); got != d.URL {
		t.Errorf("DSN with URL = %q, want %q", got, d.URL)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("CATEGORIZER_TIMEOUT_SECONDS", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}
