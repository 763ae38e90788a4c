// Package main implements a demo entry point for MusicalConductor: an
// in-process sequence orchestration runtime fronted by an event bus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/musicalconductor/bus"
	"github.com/c360/musicalconductor/config"
	"github.com/c360/musicalconductor/dedup"
	"github.com/c360/musicalconductor/executor"
	"github.com/c360/musicalconductor/health"
	"github.com/c360/musicalconductor/metric"
	"github.com/c360/musicalconductor/orchestrator"
	"github.com/c360/musicalconductor/queue"
	"github.com/c360/musicalconductor/registry"
	"github.com/c360/musicalconductor/resource"
	"github.com/c360/musicalconductor/sequence"
	"github.com/c360/musicalconductor/stats"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "conductor"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, logger, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg := config.FromEnv()
	cfg.LogLevel = cliCfg.LogLevel
	cfg.LogFormat = cliCfg.LogFormat
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	safeCfg := config.NewSafeConfig(cfg)

	ctx := context.Background()

	app, err := buildApp(ctx, safeCfg, logger)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer app.close()

	if err := registerDemoSequence(app.orch); err != nil {
		return fmt.Errorf("register demo sequence: %w", err)
	}
	if cliCfg.SequenceFile != "" {
		if err := registerSequenceFromFile(app.orch, cliCfg.SequenceFile); err != nil {
			return fmt.Errorf("register sequence file: %w", err)
		}
	}

	app.orch.Subscribe("*", func(topic string, event bus.Event) {
		logger.Info("event", "topic", topic, "payload", event)
	})

	app.orch.Start(ctx)

	if result, err := app.orch.Play("Demo", "ping-symphony", map[string]any{"resourceId": "demo"}, sequence.PriorityNormal); err != nil {
		logger.Warn("demo play failed", "error", err)
	} else {
		logger.Info("demo play admitted", "requestId", result.RequestID)
	}

	return runWithSignalHandling(ctx, app, cliCfg.ShutdownTimeout)
}

func initializeCLI() (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("starting musicalconductor", "version", Version, "build_time", BuildTime)

	return cliCfg, logger, false, nil
}

// application bundles the constructed runtime so main can close it cleanly.
type application struct {
	orch       *orchestrator.Orchestrator
	dedup      *dedup.DuplicationDetector
	metricsSrv *metric.Server
}

func (a *application) close() {
	if a.dedup != nil {
		_ = a.dedup.Close()
	}
}

func buildApp(ctx context.Context, safeCfg *config.SafeConfig, logger *slog.Logger) (*application, error) {
	cfg := safeCfg.Get()

	eventBus := bus.New(logger)
	seqRegistry := registry.New(logger)
	metricsRegistry := metric.NewMetricsRegistry()
	healthMonitor := health.NewMonitor()

	dedupDetector, err := dedup.New(ctx, cfg.DedupWindow, dedup.WithMetrics(metricsRegistry, "dedup"))
	if err != nil {
		return nil, fmt.Errorf("create dedup detector: %w", err)
	}
	delegator := resource.New(cfg.OverrideRateLimit, cfg, logger)
	execQueue := queue.New(cfg.QueueDefaultCapacity)
	statsManager, err := stats.New(stats.WithMetrics(metricsRegistry))
	if err != nil {
		return nil, fmt.Errorf("create stats manager: %w", err)
	}

	exec := executor.New(eventBus, metricsRegistry.CoreMetrics(), healthMonitor, statsManager, cfg.ExecutorLongRunWarning, logger)

	orch := orchestrator.New(orchestrator.Deps{
		Bus:       eventBus,
		Registry:  seqRegistry,
		Dedup:     dedupDetector,
		Delegator: delegator,
		Queue:     execQueue,
		Executor:  exec,
		Stats:     statsManager,
		Metrics:   metricsRegistry.CoreMetrics(),
		Health:    healthMonitor,
		Logger:    logger,
	})
	orchestrator.SetDefault(orch)

	metricsSrv := metric.NewServer(cfg.MetricsPort, cfg.MetricsPath, metricsRegistry)
	go func() {
		if err := metricsSrv.Start(); err != nil {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()

	return &application{orch: orch, dedup: dedupDetector, metricsSrv: metricsSrv}, nil
}

func registerDemoSequence(orch *orchestrator.Orchestrator) error {
	seq := sequence.Sequence{
		Name:        "Demo.ping-symphony",
		Description: "Three-beat round trip used to demonstrate the happy path.",
		Tempo:       120,
		Movements: []sequence.Movement{{
			Name: "main",
			Beats: []sequence.Beat{
				{Beat: 1, Event: "a", Timing: sequence.Timing{Kind: sequence.TimingImmediate}, ErrorHandling: sequence.ErrorStop},
				{Beat: 2, Event: "b", Timing: sequence.Timing{Kind: sequence.TimingImmediate}, ErrorHandling: sequence.ErrorStop},
				{Beat: 3, Event: "c", Timing: sequence.Timing{Kind: sequence.TimingImmediate}, ErrorHandling: sequence.ErrorStop},
			},
		}},
	}
	handlers := sequence.HandlerTable{
		"a": pingHandler("a"),
		"b": pingHandler("b"),
		"c": pingHandler("c"),
	}
	_, err := orch.RegisterPlugin(seq, handlers)
	return err
}

func pingHandler(beat string) sequence.Handler {
	return func(_ context.Context, _ map[string]any, _ *sequence.ExecutionContext) (any, error) {
		return map[string]any{"beat": beat}, nil
	}
}

func registerSequenceFromFile(orch *orchestrator.Orchestrator, path string) error {
	sf, err := config.LoadSequenceFile(path)
	if err != nil {
		return err
	}
	seq := sequence.FromFile(sf)
	validator := sequence.NewValidator(nil)
	if err := validator.Validate(&seq).Err("SequenceLoader", "registerSequenceFromFile"); err != nil {
		return err
	}
	_, err = orch.RegisterPlugin(seq, sequence.HandlerTable{})
	return err
}

func runWithSignalHandling(ctx context.Context, app *application, shutdownTimeout time.Duration) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	slog.Info("musicalconductor running", "metrics", app.metricsSrv.Address())
	<-signalCtx.Done()
	slog.Info("received shutdown signal")

	if err := app.orch.Stop(shutdownTimeout); err != nil {
		return fmt.Errorf("orchestrator shutdown: %w", err)
	}
	if err := app.metricsSrv.Stop(); err != nil {
		slog.Warn("metrics server shutdown", "error", err)
	}

	slog.Info("musicalconductor shutdown complete")
	return nil
}
