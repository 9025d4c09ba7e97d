package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvPageSpeedAPIKey = "PAGESPEED_API_KEY"
	EnvListenAddress   = "SEOAUDIT_ADDR"
	EnvDBDir           = "SEOAUDIT_DB_DIR"
	EnvDisableMetrics  = "SEOAUDIT_NO_METRICS"
)

// DefaultEnvFiles are loaded by LoadEnv when no file is given.
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadEnv loads variables from dotenv files into the process environment.
// Missing files are skipped and variables already set are never overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv copies environment settings into c. Values set explicitly on c
// win over the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPageSpeedAPIKey); v != "" && c.PageSpeedAPIKey == "" {
		c.PageSpeedAPIKey = v
	}
	if v := os.Getenv(EnvListenAddress); v != "" && c.ListenAddress == DefaultListenAddress {
		c.ListenAddress = v
	}
	if v := os.Getenv(EnvDBDir); v != "" && c.DBDir == XDGDataDir() {
		c.DBDir = v
	}
	if v := os.Getenv(EnvDisableMetrics); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.DisableMetrics = true
		}
	}
}
