package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "BOOKMARK_DIGEST_CONFIG"
	raindropTokenEnv = "RAINDROP_TOKEN"
	smtpHostEnv      = "SMTP_HOST"
	smtpPortEnv      = "SMTP_PORT"
	smtpUsernameEnv  = "SMTP_USERNAME"
	smtpPasswordEnv  = "SMTP_PASSWORD"
	mailFromEnv      = "MAIL_FROM"
	mailToEnv        = "MAIL_TO"
	logLevelEnv      = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Raindrop  RaindropConfig  `yaml:"raindrop"`
	Mail      MailConfig      `yaml:"mail"`
	Digest    DigestConfig    `yaml:"digest"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RaindropConfig describes the upstream bookmark API connection.
type RaindropConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Token   string `yaml:"token"`
}

// MailConfig wires all data required to deliver the digest mail.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// DigestConfig tunes the fetch window.
type DigestConfig struct {
	Days int `yaml:"days"`
}

// SchedulerConfig defines whether and how often the digest should recur.
type SchedulerConfig struct {
	Enabled       bool           `yaml:"enabled"`
	IntervalHours int            `yaml:"intervalHours"`
	Timezone      string         `yaml:"timezone"`
	location      *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(raindropTokenEnv); v != "" {
		c.Raindrop.Token = v
	}

	if v := os.Getenv(smtpHostEnv); v != "" {
		c.Mail.Host = v
	}
	if v := os.Getenv(smtpPortEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Mail.Port = port
		} else {
			log.Printf("config: invalid %s value %q, keeping %d", smtpPortEnv, v, c.Mail.Port)
		}
	}
	if v := os.Getenv(smtpUsernameEnv); v != "" {
		c.Mail.Username = v
	}
	if v := os.Getenv(smtpPasswordEnv); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv(mailFromEnv); v != "" {
		c.Mail.From = v
	}
	if v := os.Getenv(mailToEnv); v != "" {
		c.Mail.To = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Raindrop.BaseURL != "" {
		base.Raindrop.BaseURL = override.Raindrop.BaseURL
	}
	if override.Raindrop.Token != "" {
		base.Raindrop.Token = override.Raindrop.Token
	}

	if override.Mail.Host != "" {
		base.Mail.Host = override.Mail.Host
	}
	if override.Mail.Port != 0 {
		base.Mail.Port = override.Mail.Port
	}
	if override.Mail.Username != "" {
		base.Mail.Username = override.Mail.Username
	}
	if override.Mail.Password != "" {
		base.Mail.Password = override.Mail.Password
	}
	if override.Mail.From != "" {
		base.Mail.From = override.Mail.From
	}
	if override.Mail.To != "" {
		base.Mail.To = override.Mail.To
	}

	if override.Digest.Days != 0 {
		base.Digest.Days = override.Digest.Days
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.IntervalHours != 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Raindrop: RaindropConfig{BaseURL: "https://api.raindrop.io/rest/v1"},
		Mail:     MailConfig{Port: 587},
		Digest:   DigestConfig{Days: 7},
		Scheduler: SchedulerConfig{
			IntervalHours: 7 * 24,
			Timezone:      defaultTimezone,
			location:      tz,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
