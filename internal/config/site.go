package config

import (
	"net/url"
	"strings"
)

// SiteConfig holds host-specific audit settings.
type SiteConfig struct {
	// Keyword is the focus phrase used when none is given on the command line.
	Keyword string `yaml:"keyword,omitempty"`

	// UserAgent overrides the User-Agent sent to this host.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are custom HTTP headers to include in requests to this host,
	// for example basic auth for a staging site.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .seoaudit configuration file.
type File struct {
	// Sites maps hostnames (e.g. "www.example.com.br") to their settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults applies to every host unless overridden in Sites.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the settings for host merged over the defaults.
// host may also be a full URL; its hostname is used.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults
	if cf.Defaults.Headers != nil {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	siteConfig, ok := cf.Sites[siteKey(host)]
	if !ok {
		return result
	}

	if siteConfig.Keyword != "" {
		result.Keyword = siteConfig.Keyword
	}
	if siteConfig.UserAgent != "" {
		result.UserAgent = siteConfig.UserAgent
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range siteConfig.Headers {
			result.Headers[k] = v
		}
	}

	return result
}

// siteKey reduces a URL or host to the lowercase hostname.
func siteKey(host string) string {
	host = strings.TrimSpace(host)
	if strings.Contains(host, "://") {
		if u, err := url.Parse(host); err == nil {
			host = u.Hostname()
		}
	}
	return strings.ToLower(host)
}
