package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

type config struct {
	DBPath              string `toml:"db_path"`
	LogPath             string `toml:"log_path"`
	Debug               bool   `toml:"debug"`
	HTTPHost            string `toml:"http_host"`
	HTTPPort            int    `toml:"http_port"`
	MDNSEnabled         bool   `toml:"mdns_enabled"`
	MDNSInstance        string `toml:"mdns_instance"`
	TrustSystemClock    bool   `toml:"trust_system_clock"`
	SystemClockInterval string `toml:"system_clock_interval"`
}

func defaultConfig() config {
	return config{
		DBPath:              "time-anchor.db",
		HTTPHost:            "0.0.0.0",
		HTTPPort:            8080,
		MDNSInstance:        "Time Anchor",
		SystemClockInterval: "1m",
	}
}

func (c *config) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.DBPath, "db-path", c.DBPath, "anchor database path, in-memory if empty")
	flags.StringVar(&c.LogPath, "log-path", c.LogPath, "log file path, stderr if empty")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	flags.StringVar(&c.HTTPHost, "http-host", c.HTTPHost, "HTTP server host")
	flags.IntVar(&c.HTTPPort, "http-port", c.HTTPPort, "HTTP server port, random if zero")
	flags.BoolVar(&c.MDNSEnabled, "mdns", c.MDNSEnabled, "announce the HTTP API over mDNS")
	flags.StringVar(&c.MDNSInstance, "mdns-instance", c.MDNSInstance, "mDNS instance name")
	flags.BoolVar(&c.TrustSystemClock, "trust-system-clock", c.TrustSystemClock,
		"periodically anchor the local wall clock")
	flags.StringVar(&c.SystemClockInterval, "system-clock-interval", c.SystemClockInterval,
		"how often to anchor the local wall clock")
}

// merge overrides file values with the explicitly set flags.
func (c *config) merge(flags *pflag.FlagSet, explicit config) {
	if flags.Changed("db-path") {
		c.DBPath = explicit.DBPath
	}
	if flags.Changed("log-path") {
		c.LogPath = explicit.LogPath
	}
	if flags.Changed("debug") {
		c.Debug = explicit.Debug
	}
	if flags.Changed("http-host") {
		c.HTTPHost = explicit.HTTPHost
	}
	if flags.Changed("http-port") {
		c.HTTPPort = explicit.HTTPPort
	}
	if flags.Changed("mdns") {
		c.MDNSEnabled = explicit.MDNSEnabled
	}
	if flags.Changed("mdns-instance") {
		c.MDNSInstance = explicit.MDNSInstance
	}
	if flags.Changed("trust-system-clock") {
		c.TrustSystemClock = explicit.TrustSystemClock
	}
	if flags.Changed("system-clock-interval") {
		c.SystemClockInterval = explicit.SystemClockInterval
	}
}

func (c *config) systemClockInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.SystemClockInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid system_clock_interval: %w", err)
	}

	if interval <= 0 {
		return 0, fmt.Errorf("invalid system_clock_interval: must be positive: %s", interval)
	}

	return interval, nil
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	buf, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}

	if err := toml.Unmarshal(buf, &cfg); err != nil {
		return config{}, fmt.Errorf("failed to parse config: path=%s: %w", path, err)
	}

	return cfg, nil
}
