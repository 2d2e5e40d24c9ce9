// internal/workers/careers/index-careers/config.go
package indexcareers

import "time"

type Config struct {
	Timeout time.Duration
	// Refresh is passed to the bulk API; "wait_for" makes the documents searchable before the job completes.
	Refresh string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
		Refresh: "wait_for",
	}
}
