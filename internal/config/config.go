// Package config loads, validates and persists linkparse settings.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/guiyumin/linkparse/internal/logging"
)

var (
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidWorkers   = errors.New("invalid worker count")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidServer    = errors.New("invalid webdav server")
)

// Config holds application configuration values
type Config struct {
	Format        string                  `mapstructure:"format" yaml:"format"`
	LogLevel      string                  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat     string                  `mapstructure:"log_format" yaml:"log_format"`
	Workers       int                     `mapstructure:"workers" yaml:"workers"`
	WebDAVServers map[string]WebDAVServer `mapstructure:"webdav_servers" yaml:"webdav_servers,omitempty"`
}

// WebDAVServer is a named remote that URL lists can be read from
type WebDAVServer struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Username string `mapstructure:"username" yaml:"username,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
}

// Validate checks that every field holds a usable value
func (c *Config) Validate() error {
	if c.Format == "" {
		return fmt.Errorf("%w: format must not be empty", ErrInvalidFormat)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidFormat, c.Format, Formats)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidWorkers, c.Workers, MaxWorkers)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.LogFormat != "pretty" && c.LogFormat != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	for name, server := range c.WebDAVServers {
		// "c:/x" must stay a local path
		if len(name) < 2 {
			return fmt.Errorf("%w: name %q is too short", ErrInvalidServer, name)
		}
		if server.URL == "" {
			return fmt.Errorf("%w: %s has no url", ErrInvalidServer, name)
		}
	}
	return nil
}

// GetWebDAVServer returns the named server or nil
func (c *Config) GetWebDAVServer(name string) *WebDAVServer {
	server, ok := c.WebDAVServers[name]
	if !ok {
		return nil
	}
	return &server
}

// SetWebDAVServer adds or replaces a server
func (c *Config) SetWebDAVServer(name string, server WebDAVServer) {
	if c.WebDAVServers == nil {
		c.WebDAVServers = map[string]WebDAVServer{}
	}
	c.WebDAVServers[name] = server
}

// DeleteWebDAVServer removes a server
func (c *Config) DeleteWebDAVServer(name string) {
	delete(c.WebDAVServers, name)
}
