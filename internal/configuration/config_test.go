package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
auth:
  access_secret: test-access
  refresh_secret: test-refresh
`)

	config, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", config.Mongo.Uri)
	assert.Equal(t, "nogen", config.Mongo.Database)
	assert.Equal(t, "messages", config.Mongo.MessagesCollection)
	assert.Equal(t, 5000, config.Server.AppPort)
	assert.Equal(t, 5001, config.Server.SocketPort)
	assert.Equal(t, "ws", config.Server.SocketRoute)
	assert.Equal(t, 15, config.Auth.AccessTTLMinutes)
	assert.Equal(t, 30, config.Auth.RefreshTTLDays)
	assert.EqualValues(t, 5, config.Upload.MaxSizeMB)
	assert.NotEmpty(t, config.AI.Models)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := writeConfig(t, `
mongo:
  uri: mongodb://db:27017
  database: nogen_test
server:
  app_port: 8080
  allowed_origins:
    - https://app.example.com
auth:
  access_secret: test-access
  refresh_secret: test-refresh
  access_ttl_minutes: 5
ai:
  models:
    - some/model
`)

	config, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", config.Mongo.Uri)
	assert.Equal(t, "nogen_test", config.Mongo.Database)
	assert.Equal(t, 8080, config.Server.AppPort)
	assert.Equal(t, []string{"https://app.example.com"}, config.Server.AllowedOrigins)
	assert.Equal(t, 5, config.Auth.AccessTTLMinutes)
	assert.Equal(t, []string{"some/model"}, config.AI.Models)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	dir := writeConfig(t, `
server:
  app_port: 8080
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
}
