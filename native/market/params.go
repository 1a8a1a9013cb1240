package market

import (
	"fmt"
	"strings"
)

// MaxFeePercent is the highest marketplace fee accepted at instantiation.
// Anything above it clamps to zero instead of failing the deployment.
const MaxFeePercent = 30

// Config holds the marketplace parameters persisted alongside the swap
// ledger. An empty Collections list leaves the marketplace open to any asset
// collection; a non-empty list gates Create and Finish to the listed ones.
type Config struct {
	Admin       string
	Denom       string
	FeePercent  uint64
	Collections []string
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	clone := c
	clone.Collections = append([]string(nil), c.Collections...)
	return clone
}

// CollectionAllowed reports whether the given collection may be swapped under
// this config.
func (c Config) CollectionAllowed(collection string) bool {
	if len(c.Collections) == 0 {
		return true
	}
	for _, allowed := range c.Collections {
		if allowed == collection {
			return true
		}
	}
	return false
}

func sanitizeConfig(cfg Config) (Config, error) {
	clone := cfg.Clone()
	clone.Admin = strings.TrimSpace(clone.Admin)
	clone.Denom = strings.TrimSpace(clone.Denom)
	if clone.Admin == "" {
		return Config{}, fmt.Errorf("%w: admin required", ErrInvalidInput)
	}
	if clone.Denom == "" {
		return Config{}, fmt.Errorf("%w: native denom required", ErrInvalidInput)
	}
	trimmed := clone.Collections[:0]
	for _, collection := range clone.Collections {
		collection = strings.TrimSpace(collection)
		if collection != "" {
			trimmed = append(trimmed, collection)
		}
	}
	clone.Collections = trimmed
	return clone, nil
}
