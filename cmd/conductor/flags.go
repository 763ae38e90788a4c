package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration for the demo binary.
type CLIConfig struct {
	LogLevel        string
	LogFormat       string
	Debug           bool
	SequenceFile    string
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("MUSICALCONDUCTOR_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: MUSICALCONDUCTOR_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("MUSICALCONDUCTOR_LOG_FORMAT", "json"),
		"Log format: json, text (env: MUSICALCONDUCTOR_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("MUSICALCONDUCTOR_DEBUG", false),
		"Enable debug logging (env: MUSICALCONDUCTOR_DEBUG)")

	flag.StringVar(&cfg.SequenceFile, "sequence",
		getEnv("MUSICALCONDUCTOR_SEQUENCE_FILE", ""),
		"Path to a YAML sequence definition to register in addition to the built-in demo sequence")

	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("MUSICALCONDUCTOR_SHUTDOWN_TIMEOUT", 5*time.Second),
		"Graceful shutdown timeout (env: MUSICALCONDUCTOR_SHUTDOWN_TIMEOUT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.SequenceFile != "" {
		if _, err := os.Stat(cfg.SequenceFile); err != nil {
			return fmt.Errorf("sequence file not found: %s", cfg.SequenceFile)
		}
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - in-process sequence orchestration runtime

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run with debug logging
  %s --log-level=debug --log-format=text

  # Register an additional sequence from YAML on startup
  %s --sequence=./sequences/demo.yaml

Version: %s
Build: %s
`, os.Args[0], os.Args[0], Version, BuildTime)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
