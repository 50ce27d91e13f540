package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_reco/internal/adapters/catalogapi"
	"travel_reco/internal/adapters/catalogfile"
	"travel_reco/internal/adapters/observability"
	redisad "travel_reco/internal/adapters/redis"
	"travel_reco/internal/app"
	"travel_reco/internal/domain"
	"travel_reco/internal/shared"
	mysqlrepo "travel_reco/internal/storage/mysql"
)

func main() {
	var configPath string
	fs := flag.NewFlagSetWithEnvPrefix("seeder", "TRAVELREC", flag.ExitOnError)
	fs.StringVar(&configPath, "config-file", "", "YAML config file")
	_ = fs.Parse(os.Args[1:])

	cfg := shared.Load()
	if configPath != "" {
		cfg = shared.LoadFile(configPath)
	}

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var client domain.CatalogDocumentClient
	switch cfg.CatalogSource {
	case "http":
		c, err := catalogapi.New(cfg.CatalogURL, cfg.CatalogKey, cfg.FetchRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize catalog client")
		}
		client = c
	case "file", "mysql":
		// mysql is the destination; read the document from disk
		client = catalogfile.New(cfg.CatalogPath)
	default:
		log.Fatal().Str("source", cfg.CatalogSource).Msg("unknown CATALOG_SOURCE")
	}

	log.Info().Str("source", cfg.CatalogSource).Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(redisad.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB, Prefix: cfg.RedisPrefix})
		defer rc.Close()
		cache = rc
	}

	seed := app.NewSeedService(app.DocumentSource{Client: client}, mysqlrepo.New(db), cache)
	catalog, err := seed.Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	if cache == nil {
		log.Info().Msg("seeding completed")
		return
	}

	// warm the cache for the new version with the usual searches
	search := app.NewSearchService(catalog, cache, cfg.CacheTTL, app.MatchOptions{RejectEmptyQuery: cfg.EmptyQueryGuard})
	workers := cfg.SeedWorkers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, q := range app.CommonQueries(catalog) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("cache warm-up interrupted")
			break
		}

		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			defer sem.Release(1)

			out, rule := search.Search(ctx, q)
			log.Debug().Str("query", q).Str("rule", string(rule)).Int("results", len(out)).Msg("cache warmed")
		}(q)
	}

	wg.Wait()
	log.Info().Str("version", search.Version()).Msg("seeding completed")
}
