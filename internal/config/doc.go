// Package config provides configuration structures and utilities for seoaudit.
// Settings come from defaults, dotenv files, the environment, CLI flags and
// the optional .seoaudit YAML file with per-host overrides.
package config
