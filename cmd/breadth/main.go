package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/analyzer"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/cleaner"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/collector"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/config"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/report"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/scheduler"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/screener"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/store"
	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/ui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env for API keys; a missing file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "breadth",
		Usage: "market breadth dashboard: trend, volatility and beta across a stock universe",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "configs/config.yaml", EnvVars: []string{"CONFIG_PATH"}, Usage: "path to the YAML config"},
			&cli.StringFlag{Name: "benchmark", Usage: "override the benchmark symbol"},
			&cli.StringFlag{Name: "lookback", Usage: "history window, e.g. 365d"},
			&cli.IntFlag{Name: "top", Usage: "number of screen candidates to keep"},
			&cli.Float64Flag{Name: "trend-floor", Usage: "minimum trend distance for the screen, percent"},
			&cli.Float64Flag{Name: "vol-ceiling", Usage: "maximum volatility for the screen, percent"},
			&cli.BoolFlag{Name: "no-ui", Usage: "skip the dashboard, print the text report only"},
			&cli.BoolFlag{Name: "no-cache", Usage: "bypass the SQLite price cache"},
			&cli.BoolFlag{Name: "mock", Usage: "use synthetic data instead of a live source"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func run(c *cli.Context) error {
	log.Println("[INFO] market breadth dashboard starting...")

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, c)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	lookbackDays, err := cfg.LookbackDays()
	if err != nil {
		return err
	}

	var fetcher collector.Fetcher
	switch {
	case c.Bool("mock"):
		fetcher = &collector.MockFetcher{Price: 100}
	case cfg.DataSource.BaseURL != "":
		fetcher = collector.NewTwelveDataFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	var st store.Store = store.NewNoopStore()
	if !c.Bool("no-cache") && cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			log.Printf("[WARN] create cache dir: %v", err)
		}
		if ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath); err != nil {
			log.Printf("[WARN] init sqlite price cache failed, using noop: %v", err)
		} else {
			st = ss
			defer ss.Close()
		}
	}

	col := collector.NewCollector(fetcher, st, cfg.Universe.Symbols, cfg.Universe.Benchmark, lookbackDays)

	// The dashboard owns the terminal, so scheduled re-runs stay text-only.
	showUI := !c.Bool("no-ui") && cfg.Schedule.RefreshCron == ""
	scan := func() error { return runScan(col, cfg, showUI) }

	if cfg.Schedule.RefreshCron == "" {
		return scan()
	}

	if err := scan(); err != nil {
		log.Printf("[ERROR] initial scan: %v", err)
	}

	sched := scheduler.NewScheduler()
	if err := sched.RegisterRefresh(cfg.Schedule.RefreshCron, func() {
		if err := scan(); err != nil {
			log.Printf("[ERROR] scheduled scan: %v", err)
		}
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] watch mode active. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	return nil
}

func runScan(col *collector.Collector, cfg *config.Config, showUI bool) error {
	raw, err := col.Collect()
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	clean, dropped := cleaner.Clean(raw)
	if len(dropped) > 0 {
		log.Printf("[WARN] dropped %d symbols with incomplete history: %v", len(dropped), dropped)
	}

	assets, bench, err := cleaner.Split(clean, cfg.Universe.Benchmark)
	if err != nil {
		return fmt.Errorf("split benchmark: %w", err)
	}

	metrics, err := analyzer.NewAnalyzer(cfg.Metrics.SMAWindow).Analyze(assets, bench)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	candidates := screener.NewScreener(cfg.Screener.TrendFloor, cfg.Screener.VolCeiling, cfg.Screener.TopN).Screen(metrics)

	if showUI {
		dash := &ui.Dashboard{
			Metrics:   metrics,
			Benchmark: cfg.Universe.Benchmark,
			SMAWindow: cfg.Metrics.SMAWindow,
			Outliers:  ui.OutlierRule{TrendAbs: cfg.Chart.TrendOutlier, Beta: cfg.Chart.BetaOutlier},
		}
		if err := dash.Run(); err != nil {
			log.Printf("[WARN] dashboard unavailable: %v", err)
		}
	}

	fmt.Print(report.Format(report.Summary{
		Benchmark:  cfg.Universe.Benchmark,
		Dropped:    dropped,
		Metrics:    metrics,
		Candidates: candidates,
		SMAWindow:  cfg.Metrics.SMAWindow,
		TrendFloor: cfg.Screener.TrendFloor,
		VolCeiling: cfg.Screener.VolCeiling,
	}))
	return nil
}

func applyFlags(cfg *config.Config, c *cli.Context) {
	if v := c.String("benchmark"); v != "" {
		cfg.Universe.Benchmark = v
	}
	if v := c.String("lookback"); v != "" {
		cfg.DataSource.Lookback = v
	}
	if c.IsSet("top") {
		cfg.Screener.TopN = c.Int("top")
	}
	if c.IsSet("trend-floor") {
		cfg.Screener.TrendFloor = c.Float64("trend-floor")
	}
	if c.IsSet("vol-ceiling") {
		cfg.Screener.VolCeiling = c.Float64("vol-ceiling")
	}
}
