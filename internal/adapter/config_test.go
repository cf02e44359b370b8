package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Tags, cfg.Tags)
	assert.True(t, cfg.Server.TagsEnabled)
	assert.Contains(t, cfg.Server.TagTypes, "MUSICBRAINZ_ARTISTID")
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  url: music.local:6600
  tags_enabled: false
  tagtypes: Artist,Album,Title
tags:
  columns: "Title, Artist"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "music.local:6600", cfg.Server.URL)
	assert.False(t, cfg.Server.TagsEnabled)
	assert.Equal(t, "Artist,Album,Title", cfg.Server.TagTypes)
	assert.Equal(t, "Title, Artist", cfg.Tags.Columns)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultConfig().Tags.Search, cfg.Tags.Search)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TAGDECK_TAGS_SEARCH", "Genre")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Genre", cfg.Tags.Search)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagdeck", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.URL = "jukebox:6600"
	cfg.Tags.Columns = "Title,Genre"
	cfg.Store.Path = ""
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "url: jukebox:6600")
	assert.Contains(t, string(data), "tags_enabled: true")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/logs/tagdeck.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "tagdeck.log"), got)

	got, err = ExpandHome("/var/log/x.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/x.log", got)
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc"), 0755))

	require.NoError(t, ClearCache(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, ClearCache(""))
}
