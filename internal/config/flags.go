package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a backend base URL (e.g. https://api.gridboard.app)
//	-d local cache database path
//	-request-timeout per-attempt request timeout (e.g., "10s")
//	-retry-count number of automatic retries on transport failure
//	-retry-backoff constant wait between retries (e.g., "1s")
//	-probe-interval connectivity probe interval (e.g., "15s")
//	-probe-timeout single connectivity probe timeout (e.g., "3s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var baseURL string
	var databaseDSN string
	var requestTimeout time.Duration
	var retryCount int
	var retryBackoff time.Duration
	var probeInterval time.Duration
	var probeTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&baseURL, "a", "", "Backend base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local cache database path")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	flag.IntVar(&retryCount, "retry-count", 0, "Automatic retries on transport failure")
	flag.DurationVar(&retryBackoff, "retry-backoff", 0, "Wait between retries (e.g., 1s)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 15s)")
	flag.DurationVar(&probeTimeout, "probe-timeout", 0, "Connectivity probe timeout (e.g., 3s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
			RetryCount:     retryCount,
			RetryBackoff:   retryBackoff,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Watcher: Watcher{
			ProbeInterval: probeInterval,
			ProbeTimeout:  probeTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
