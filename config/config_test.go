package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.CheckIntervalMinutes)
	assert.Equal(t, 10*time.Minute, cfg.CheckInterval())
	assert.Equal(t, "http://localhost:8080/oauth/callback", cfg.Google.RedirectURL)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"slack": {"bot_token": "xoxb-test", "channel": "C123", "ping_channel": true},
		"google": {
			"client_id": "id",
			"client_secret": "secret",
			"scopes": ["https://www.googleapis.com/auth/classroom.announcements.readonly"],
			"enrollment_codes": ["abc123"]
		},
		"check_interval_minutes": 5,
		"timezone": "Europe/Berlin"
	}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "C123", cfg.Slack.Channel)
	assert.True(t, cfg.Slack.PingChannel)
	assert.Equal(t, 5*time.Minute, cfg.CheckInterval())
	assert.Equal(t, []string{"abc123"}, cfg.Google.EnrollmentCodes)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "{broken")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"slack": {"bot_token": "from-file"}}`)

	t.Setenv("CLASSWATCH_SLACK_TOKEN", "from-env")
	t.Setenv("CLASSWATCH_SLACK_CHANNEL", "C999")
	t.Setenv("GOOGLE_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "env-secret")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Slack.BotToken)
	assert.Equal(t, "C999", cfg.Slack.Channel)
	assert.Equal(t, "env-id", cfg.Google.ClientID)
	assert.Equal(t, "env-secret", cfg.Google.ClientSecret)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Slack:  SlackConfig{BotToken: "xoxb"},
		Google: GoogleConfig{ClientID: "id", ClientSecret: "secret", Scopes: []string{ScopeAnnouncement}},
	}
	assert.NoError(t, valid.Validate())

	noGoogle := &Config{Slack: SlackConfig{BotToken: "xoxb"}}
	assert.Error(t, noGoogle.Validate())

	noScopes := &Config{
		Slack:  SlackConfig{BotToken: "xoxb"},
		Google: GoogleConfig{ClientID: "id", ClientSecret: "secret"},
	}
	assert.Error(t, noScopes.Validate())

	noSlack := &Config{
		Google: GoogleConfig{ClientID: "id", ClientSecret: "secret", Scopes: []string{ScopeAnnouncement}},
	}
	assert.Error(t, noSlack.Validate())
}

func TestHasScope(t *testing.T) {
	cfg := &Config{Google: GoogleConfig{Scopes: []string{ScopeAnnouncement, ScopeDrive}}}

	assert.True(t, cfg.HasScope(ScopeDrive))
	assert.False(t, cfg.HasScope(ScopeCourseWork))
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, (&Config{}).Location())
	assert.Equal(t, time.UTC, (&Config{Timezone: "Not/AZone"}).Location())
}
