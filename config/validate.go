package config

import "fmt"

func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	if cfg.ListenAddress == "" {
		return fmt.Errorf("config: ListenAddress empty")
	}
	if cfg.RateLimitRPS <= 0 {
		return fmt.Errorf("config: RateLimitRPS <= 0")
	}
	if cfg.Market.Admin == "" {
		return fmt.Errorf("market: Admin empty")
	}
	if cfg.Market.Denom == "" {
		return fmt.Errorf("market: Denom empty")
	}
	if cfg.Market.FeePercent > 100 {
		return fmt.Errorf("market: FeePercent > 100")
	}
	return nil
}
