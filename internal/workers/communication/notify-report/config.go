// internal/workers/communication/notify-report/config.go
package notifyreport

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// FailJobOnError turns a failed send into a retryable job failure instead of a "failed" status.
	FailJobOnError bool
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
