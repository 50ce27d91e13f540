package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv          string        `yaml:"app_env"`
	CatalogSource   string        `yaml:"catalog_source"` // http|file|mysql
	CatalogURL      string        `yaml:"catalog_url"`
	CatalogKey      string        `yaml:"catalog_key"`
	CatalogPath     string        `yaml:"catalog_path"`
	MySQLDSN        string        `yaml:"mysql_dsn"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisDB         int           `yaml:"redis_db"`
	RedisPass       string        `yaml:"redis_password"`
	RedisPrefix     string        `yaml:"redis_prefix"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	ClockTick       time.Duration `yaml:"clock_tick"`
	EmptyQueryGuard bool          `yaml:"empty_query_guard"`
	FetchRPS        int           `yaml:"fetch_rps"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
	SeedWorkers     int           `yaml:"seed_workers"`
}

// Load reads the environment. If TRAVELREC_CONFIG names a YAML file its
// values are applied first and the environment wins over them.
func Load() Config {
	return LoadFile(os.Getenv("TRAVELREC_CONFIG"))
}

func LoadFile(path string) Config {
	c := Defaults()
	if path != "" {
		if err := overlayYAML(&c, path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config file ignored")
		}
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		if v := os.Getenv(k); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				return d
			}
		}
		return def
	}
	boolean := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
		return def
	}

	c.AppEnv = env("APP_ENV", c.AppEnv)
	c.CatalogSource = strings.ToLower(env("CATALOG_SOURCE", c.CatalogSource))
	c.CatalogURL = env("CATALOG_URL", c.CatalogURL)
	c.CatalogKey = env("CATALOG_API_KEY", c.CatalogKey)
	c.CatalogPath = env("CATALOG_PATH", c.CatalogPath)
	c.MySQLDSN = env("MYSQL_DSN", c.MySQLDSN)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPass = env("REDIS_PASSWORD", c.RedisPass)
	c.RedisDB = atoi("REDIS_DB", c.RedisDB)
	c.RedisPrefix = env("REDIS_PREFIX", c.RedisPrefix)
	c.CacheTTL = time.Duration(atoi("CACHE_TTL_SECONDS", int(c.CacheTTL.Seconds()))) * time.Second
	c.MetricsAddr = env("METRICS_ADDR", c.MetricsAddr)
	c.ClockTick = dur("CLOCK_TICK", c.ClockTick)
	c.EmptyQueryGuard = boolean("EMPTY_QUERY_GUARD", c.EmptyQueryGuard)
	c.FetchRPS = atoi("FETCH_RPS", c.FetchRPS)
	c.LogFile = env("LOG_FILE", c.LogFile)
	c.LogLevel = env("LOG_LEVEL", c.LogLevel)
	c.SeedWorkers = atoi("SEED_WORKERS", c.SeedWorkers)

	if c.CatalogSource == "http" && c.CatalogURL == "" {
		log.Warn().Msg("CATALOG_URL is empty")
	}
	return c
}

func Defaults() Config {
	return Config{
		AppEnv:        "prod",
		CatalogSource: "file",
		CatalogPath:   "travel_recommendation_api.json",
		MySQLDSN:      "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		RedisPrefix:   "travelrec:",
		CacheTTL:      900 * time.Second,
		ClockTick:     time.Second,
		FetchRPS:      5,
		LogFile:       "travelrec.log",
		LogLevel:      "info",
		SeedWorkers:   4,
	}
}

func overlayYAML(c *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
