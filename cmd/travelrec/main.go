package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/go-sql-driver/mysql"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/catalogapi"
	"travel_reco/internal/adapters/catalogfile"
	server "travel_reco/internal/adapters/http_server"
	"travel_reco/internal/adapters/observability"
	redisad "travel_reco/internal/adapters/redis"
	"travel_reco/internal/adapters/textsink"
	"travel_reco/internal/adapters/tui"
	"travel_reco/internal/app"
	"travel_reco/internal/domain"
	"travel_reco/internal/shared"
	mysqlrepo "travel_reco/internal/storage/mysql"
)

// catalogLoadTimeout bounds the startup load; the empty catalog is used after it.
const catalogLoadTimeout = time.Minute

type cliOptions struct {
	configPath string
	query      string
	style      string
	oneShot    bool
}

// parseFlags reads the command line. Flags can also come from TRAVELREC_*
// environment variables (TRAVELREC_Q, TRAVELREC_STYLE, TRAVELREC_CONFIG_FILE).
func parseFlags(args []string) (cliOptions, error) {
	var o cliOptions
	fs := flag.NewFlagSetWithEnvPrefix("travelrec", "TRAVELREC", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config-file", "", "YAML config file")
	fs.StringVar(&o.query, "q", "", "run one search, print the results and exit")
	fs.StringVar(&o.style, "style", "", "markdown style for -q output (dark, light, notty)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	// `-q ""` still runs one search
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "q" {
			o.oneShot = true
		}
	})
	return o, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cfg := shared.Load()
	if opts.configPath != "" {
		cfg = shared.LoadFile(opts.configPath)
	}

	// the TUI owns the terminal, so logs go to a file
	var logOut io.Writer = os.Stderr
	if !opts.oneShot && cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc := catalogSource(cfg)
	defer closeSrc()
	loadCtx, cancel := context.WithTimeout(ctx, catalogLoadTimeout)
	catalog := app.LoadCatalog(loadCtx, cfg.CatalogSource, src)
	cancel()

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(redisad.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB, Prefix: cfg.RedisPrefix})
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; searching without cache")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}
	search := app.NewSearchService(catalog, cache, cfg.CacheTTL, app.MatchOptions{RejectEmptyQuery: cfg.EmptyQueryGuard})

	if cfg.MetricsAddr != "" {
		srv := server.New()
		reg := observability.InitRegistry()
		srv.Mount("/metrics", observability.MetricsHandler(reg))
		srv.MountHandlers(&server.Handlers{S: search})
		srv.Serve(ctx, cfg.MetricsAddr)
	}

	if opts.oneShot {
		return runOnce(ctx, search, opts.query, opts.style)
	}

	var redraw tui.Redrawer
	clock := app.NewScheduler(app.SchedulerOptions{Period: cfg.ClockTick, OnTick: redraw.Notify})
	board := tui.NewBoard()
	ctrl := app.NewController(search, board, clock)
	defer ctrl.Close()

	p := tea.NewProgram(tui.New(tui.Options{Controller: ctrl, Board: board, Source: cfg.CatalogSource}),
		tea.WithAltScreen(), tea.WithContext(ctx))
	redraw.Attach(p)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runOnce renders one search to stdout. The clocks are filled in once by
// Submit; the scheduler is closed before printing.
func runOnce(ctx context.Context, search *app.SearchService, query, style string) int {
	printer := textsink.New(os.Stdout, textsink.Options{Style: style})
	ctrl := app.NewController(search, printer, nil)
	ctrl.Submit(ctx, query)
	ctrl.Close()
	if err := printer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func catalogSource(cfg shared.Config) (domain.CatalogSource, func()) {
	switch cfg.CatalogSource {
	case "http":
		client, err := catalogapi.New(cfg.CatalogURL, cfg.CatalogKey, cfg.FetchRPS)
		if err != nil {
			log.Error().Err(err).Msg("catalog client init failed")
			return nil, func() {}
		}
		return app.DocumentSource{Client: client}, func() {}
	case "file":
		return app.DocumentSource{Client: catalogfile.New(cfg.CatalogPath)}, func() {}
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Error().Err(err).Msg("sql.Open failed")
			return nil, func() {}
		}
		return app.RepoSource{Repo: mysqlrepo.New(db)}, func() { _ = db.Close() }
	default:
		log.Error().Str("source", cfg.CatalogSource).Msg("unknown CATALOG_SOURCE")
		return nil, func() {}
	}
}
