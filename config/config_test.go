package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestBuildFromYAML(t *testing.T) {
	v := newViper(t, `
asana:
  access_token: tok
  project: "100"
  pr_open_section: "200"
  merged_section: "300"
  move_on_actions: [opened, merged]
github:
  ack_reaction: eyes
webhook:
  dedup_ttl: 10m
`)

	cfg, err := build(v)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.Asana.AccessToken)
	assert.Equal(t, "100", cfg.Asana.Project)
	assert.Equal(t, []string{"opened", "merged"}, cfg.Asana.MoveOnActions)
	assert.Equal(t, "eyes", cfg.GitHub.AckReaction)
	assert.Equal(t, 10*time.Minute, cfg.Webhook.DedupTTL)

	// defaults
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, "https://app.asana.com/api/1.0", cfg.Asana.BaseURL)
	assert.Equal(t, "/webhook/github", cfg.Webhook.Path)
	assert.Equal(t, 1000, cfg.Webhook.DedupSize)
}

func TestBuildLegacyEnv(t *testing.T) {
	t.Setenv("ASANA_ACCESS_TOKEN", "legacy-token")
	t.Setenv("ASANA_PROJECT", "1")
	t.Setenv("ASANA_MERGED_SECTION", "3")
	t.Setenv("GITHUB_LOGIN", "bridge-bot")
	t.Setenv("WEBHOOK_SECRET", "s3cret")
	t.Setenv("ASANA_MOVE_ON_ACTIONS", "opened, merged")

	cfg, err := build(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "legacy-token", cfg.Asana.AccessToken)
	assert.Equal(t, "1", cfg.Asana.Project)
	assert.Equal(t, "3", cfg.Asana.MergedSection)
	assert.Equal(t, "bridge-bot", cfg.GitHub.Login)
	assert.Equal(t, "s3cret", cfg.Webhook.Secret)
	assert.Equal(t, []string{"opened", "merged"}, cfg.Asana.MoveOnActions)
}

func TestBuildProjectWithoutSections(t *testing.T) {
	cfg, err := build(newViper(t, `asana: {access_token: t, project: "123"}`))
	require.NoError(t, err)

	assert.Equal(t, "123", cfg.Asana.Project)
	assert.Empty(t, cfg.Asana.PROpenSection)
	assert.Empty(t, cfg.Asana.MergedSection)
	assert.Equal(t, 2*time.Minute, cfg.Webhook.ProcessTimeout)
}

func TestBuildValidation(t *testing.T) {
	tcs := map[string]string{
		"missing token":    "asana: {project: x}",
		"negative fan-out": "asana: {access_token: t}\nwebhook: {max_concurrency: -1}",
	}
	for name, yaml := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := build(newViper(t, yaml))
			assert.Error(t, err)
		})
	}
}
