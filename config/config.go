// ABOUTME: Configuration loading for the classwatch daemon
// ABOUTME: Handles JSON config at XDG paths, env var overrides, and scope checks
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	// Granted scopes gate which API surfaces are touched at all.
	ScopeCourses      = "https://www.googleapis.com/auth/classroom.courses.readonly"
	ScopeAnnouncement = "https://www.googleapis.com/auth/classroom.announcements.readonly"
	ScopeCourseWork   = "https://www.googleapis.com/auth/classroom.coursework.me.readonly"
	ScopeDrive        = "https://www.googleapis.com/auth/drive.readonly"

	defaultCheckIntervalMinutes = 10
	defaultRedirectURL          = "http://localhost:8080/oauth/callback"
)

// SlackConfig holds the chat destination settings.
type SlackConfig struct {
	BotToken    string `json:"bot_token"`
	Channel     string `json:"channel"`
	PingChannel bool   `json:"ping_channel,omitempty"`
}

// GoogleConfig holds OAuth client settings and course selection filters.
type GoogleConfig struct {
	ClientID        string   `json:"client_id"`
	ClientSecret    string   `json:"client_secret"`
	RedirectURL     string   `json:"redirect_url,omitempty"`
	Scopes          []string `json:"scopes"`
	EnrollmentCodes []string `json:"enrollment_codes,omitempty"`
	LinkIDs         []string `json:"link_ids,omitempty"`
}

// Config is the full configuration document. One JSON file, env overrides
// for the secrets so they can stay out of the file.
type Config struct {
	Slack                SlackConfig  `json:"slack"`
	Google               GoogleConfig `json:"google"`
	CheckIntervalMinutes int          `json:"check_interval_minutes,omitempty"`
	Timezone             string       `json:"timezone,omitempty"`
}

// Dir returns the XDG-compliant directory for classwatch state.
func Dir() string {
	return filepath.Join(xdg.DataHome, "classwatch")
}

// Path returns the XDG-compliant path of the config file.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads configuration from path (Path() when empty) and applies
// environment overrides. A missing file is not an error; overrides alone can
// carry a minimal setup.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := &Config{
		CheckIntervalMinutes: defaultCheckIntervalMinutes,
	}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
	} else {
		defer func() { _ = f.Close() }()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Google.RedirectURL == "" {
		cfg.Google.RedirectURL = defaultRedirectURL
	}
	if cfg.CheckIntervalMinutes <= 0 {
		cfg.CheckIntervalMinutes = defaultCheckIntervalMinutes
	}

	return cfg, nil
}

// applyEnvOverrides lets secrets and the channel come from the environment:
// CLASSWATCH_SLACK_TOKEN, CLASSWATCH_SLACK_CHANNEL, GOOGLE_CLIENT_ID,
// GOOGLE_CLIENT_SECRET.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLASSWATCH_SLACK_TOKEN"); v != "" {
		cfg.Slack.BotToken = v
	}
	if v := os.Getenv("CLASSWATCH_SLACK_CHANNEL"); v != "" {
		cfg.Slack.Channel = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.Google.ClientSecret = v
	}
}

// Validate checks the fields the daemon cannot run without.
func (c *Config) Validate() error {
	if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
		return fmt.Errorf("google OAuth credentials not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET environment variables or fill in %s", Path())
	}
	if len(c.Google.Scopes) == 0 {
		return fmt.Errorf("no google scopes configured")
	}
	if c.Slack.BotToken == "" {
		return fmt.Errorf("slack bot token not configured")
	}
	return nil
}

// HasScope reports whether the given scope was granted in the config.
func (c *Config) HasScope(scope string) bool {
	for _, s := range c.Google.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// CheckInterval returns the poll interval as a duration.
func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMinutes) * time.Minute
}

// Location resolves the display timezone, falling back to UTC when the
// configured name is empty or unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
