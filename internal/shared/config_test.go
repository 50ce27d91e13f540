package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"travel_reco/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRAVELREC_CONFIG", "")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("CLOCK_TICK", "")
	c := shared.Load()
	if c.CatalogSource != "file" || c.ClockTick != time.Second || c.CacheTTL != 15*time.Minute {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.EmptyQueryGuard {
		t.Fatalf("empty query guard must default to off")
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "travelrec.yaml")
	yml := "catalog_source: http\ncatalog_url: https://example.test/\nclock_tick: 2s\nempty_query_guard: true\nredis_addr: yaml:6379\n"
	if err := os.WriteFile(p, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TRAVELREC_CONFIG", p)
	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("CLOCK_TICK", "")

	c := shared.Load()
	if c.CatalogSource != "http" || c.CatalogURL != "https://example.test/" {
		t.Fatalf("yaml not applied: %+v", c)
	}
	if c.ClockTick != 2*time.Second || !c.EmptyQueryGuard {
		t.Fatalf("yaml duration/bool not applied: %+v", c)
	}
	if c.RedisAddr != "env:6379" {
		t.Fatalf("env should override yaml, got %q", c.RedisAddr)
	}
}

func TestLoad_BadValuesKeepDefaults(t *testing.T) {
	t.Setenv("TRAVELREC_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CLOCK_TICK", "soon")
	t.Setenv("EMPTY_QUERY_GUARD", "maybe")
	t.Setenv("CATALOG_SOURCE", "MySQL")

	c := shared.Load()
	if c.ClockTick != time.Second || c.EmptyQueryGuard {
		t.Fatalf("bad env values should be ignored: %+v", c)
	}
	if c.CatalogSource != "mysql" {
		t.Fatalf("catalog source should be lower-cased, got %q", c.CatalogSource)
	}
}

func TestLoadFile_OpsAndSeederKeys(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_PREFIX", "staging:")
	t.Setenv("SEED_WORKERS", "8")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	c := shared.LoadFile("")
	if c.LogLevel != "debug" || c.RedisPrefix != "staging:" || c.SeedWorkers != 8 {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.CacheTTL != 30*time.Second {
		t.Fatalf("cache ttl = %v", c.CacheTTL)
	}

	d := shared.Defaults()
	if d.RedisPrefix != "travelrec:" || d.LogLevel != "info" || d.SeedWorkers != 4 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}
