package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)

	path := writeTempJSON(t, "", "", map[string]any{"server_url": "http://other:1"})
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://other:1", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)

	_, err = Load(path + ".missing")
	assert.Error(t, err)
}
