// internal/workers/careers/search-careers/config.go
package searchcareers

import "time"

type Config struct {
	Timeout     time.Duration
	DefaultSize int
	MaxSize     int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		DefaultSize: 20,
		MaxSize:     100,
	}
}
