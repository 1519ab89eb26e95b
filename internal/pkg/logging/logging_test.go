package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/collage/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStdout(t *testing.T) {
	closer, err := Setup(config.LogConfig{Level: "debug", Format: "text"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}

func TestSetupRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collage.log")

	closer, err := Setup(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logrus.WithField("request_id", "abc").Info("written to file")
	require.NoError(t, closer.Close())
	logrus.SetOutput(os.Stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"abc"`)
	assert.Contains(t, string(data), "written to file")
}

func TestSetupRejectsBadInput(t *testing.T) {
	_, err := Setup(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = Setup(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
