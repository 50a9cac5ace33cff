package submitfinancials

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout       time.Duration
	NotifyTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		NotifyTimeout: 10 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("notify_timeout must be positive")
	}
	return nil
}
