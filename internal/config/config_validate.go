// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func getStructValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateTags(); err != nil {
		return err
	}

	validators := []func() error{
		c.validateQuery,
		c.validateSecurity,
		c.validateNATS,
		c.validateScanClient,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// validateTags runs the `validate` struct tags and reports the first failure
// by its koanf-style path.
func (c *Config) validateTags() error {
	err := getStructValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	path := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	if fe.Param() != "" {
		return fmt.Errorf("%s failed %s=%s (got %v)", path, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("%s failed %s (got %v)", path, fe.Tag(), fe.Value())
}

// validateQuery validates the query lookback windows
func (c *Config) validateQuery() error {
	if c.Query.RecentLookback <= 0 || c.Query.RecentLookback > 24*time.Hour {
		return fmt.Errorf("RECENT_LOOKBACK must be between 0 and 24h, got %s", c.Query.RecentLookback)
	}
	if c.Query.ScannedLookback <= 0 || c.Query.ScannedLookback > 24*time.Hour {
		return fmt.Errorf("SCANNED_LOOKBACK must be between 0 and 24h, got %s", c.Query.ScannedLookback)
	}
	return nil
}

// validateSecurity validates rate limit and CORS settings
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
		}
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must not be empty")
	}
	if c.Server.Environment == "production" {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' when ENVIRONMENT=production")
			}
		}
	}
	return nil
}

// validateNATS validates the relay settings (only if enabled)
func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if c.NATS.NextLocationTopic == "" || c.NATS.EntitiesTopic == "" {
		return fmt.Errorf("NATS topics must not be empty when NATS_ENABLED=true")
	}
	if c.NATS.SubscribersCount < 1 || c.NATS.SubscribersCount > 32 {
		return fmt.Errorf("NATS_SUBSCRIBERS must be between 1 and 32")
	}
	if c.NATS.EmbeddedServer && c.NATS.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	return nil
}

// validateScanClient validates the preview scanner URL (only if set)
func (c *Config) validateScanClient() error {
	if c.ScanClient.URL == "" {
		return nil
	}
	if err := validateHTTPURL(c.ScanClient.URL, "SCAN_CLIENT_URL"); err != nil {
		return err
	}
	if c.ScanClient.Timeout <= 0 {
		return fmt.Errorf("SCAN_CLIENT_TIMEOUT must be positive")
	}
	return nil
}
