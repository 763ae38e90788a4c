// Package config provides the orchestration runtime's configuration: a
// thread-safe SafeConfig wrapper, environment-variable overrides, and
// optional YAML sequence-definition loading for the demo CLI.
//
// # Basic Usage
//
//	cfg := config.FromEnv()
//	safe := config.NewSafeConfig(cfg)
//
//	current := safe.Get()
//	current.DedupWindow = 2 * time.Second
//	if err := safe.Update(current); err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
// All overrides use the MUSICALCONDUCTOR_ prefix:
//
//	MUSICALCONDUCTOR_DEDUP_WINDOW=1500ms
//	MUSICALCONDUCTOR_QUEUE_CAPACITY=100
//	MUSICALCONDUCTOR_OVERRIDE_RATE_LIMIT=5
//	MUSICALCONDUCTOR_STRICT_MODE_RESOURCES=device-1,device-2
//	MUSICALCONDUCTOR_LOG_LEVEL=debug
//	MUSICALCONDUCTOR_LOG_FORMAT=text
//	MUSICALCONDUCTOR_METRICS_PORT=9090
//	MUSICALCONDUCTOR_HEALTH_PORT=8080
package config
