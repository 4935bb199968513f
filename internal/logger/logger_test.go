package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected logrus.Level
	}{
		{name: "default is warn", opts: Options{}, expected: logrus.WarnLevel},
		{name: "configured level", opts: Options{Level: "info"}, expected: logrus.InfoLevel},
		{name: "verbose wins", opts: Options{Level: "error", Verbose: true}, expected: logrus.DebugLevel},
		{name: "case insensitive", opts: Options{Level: "DEBUG"}, expected: logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l.GetLevel())
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing log level")
}

func TestNew_Output(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Verbose: true, Output: &buf})
	require.NoError(t, err)

	l.WithField("provider", "gemini").Debug("resolving")

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, "msg=resolving")
	assert.Contains(t, out, "provider=gemini")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Output: &buf})
	require.NoError(t, err)

	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.Equal(t, logrus.PanicLevel, l.GetLevel())
	l.Error("dropped")
}
