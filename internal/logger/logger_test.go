package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name: "file output",
			config: Config{
				Level:      "info",
				File:       filepath.Join(t.TempDir(), "banterbot.log"),
				MaxSize:    1,
				MaxBackups: 1,
				MaxAge:     1,
			},
		},
		{
			name:   "stdout only",
			config: Config{Level: "debug", EnableStdout: true},
		},
		{
			name: "file and stdout",
			config: Config{
				Level:        "warn",
				File:         filepath.Join(t.TempDir(), "banterbot.log"),
				EnableStdout: true,
			},
		},
		{
			name:   "invalid level defaults to info",
			config: Config{Level: "nonsense", EnableStdout: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Init(tt.config))
			require.NotNil(t, GetLogger())
		})
	}
}

func TestInitCreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "dir", "banterbot.log")
	require.NoError(t, Init(Config{Level: "info", File: logFile}))

	_, err := os.Stat(filepath.Dir(logFile))
	assert.NoError(t, err)
}

func TestInitLevelParsing(t *testing.T) {
	require.NoError(t, Init(Config{Level: "error", EnableStdout: true}))
	assert.Equal(t, logrus.ErrorLevel, GetLogger().GetLevel())

	require.NoError(t, Init(Config{Level: "garbage", EnableStdout: true}))
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
}

func TestGetLoggerWithoutInit(t *testing.T) {
	globalLogger = nil
	l := GetLogger()
	require.NotNil(t, l)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestWithFieldHelpers(t *testing.T) {
	require.NoError(t, Init(Config{Level: "info", EnableStdout: true}))

	entry := WithField("channel", "C123")
	require.NotNil(t, entry)
	assert.Equal(t, "C123", entry.Data["channel"])

	entry = WithFields(logrus.Fields{"user": "U1", "rule": "greeting"})
	assert.Equal(t, "U1", entry.Data["user"])
	assert.Equal(t, "greeting", entry.Data["rule"])
}
