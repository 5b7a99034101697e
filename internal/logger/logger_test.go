package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "unknown"} {
		t.Run(mode, func(t *testing.T) {
			l, err := New(mode, "debug")
			require.NoError(t, err)
			require.NotNil(t, l.SugaredLogger)
		})
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := New("prod", "shouting")
	require.NoError(t, err)
	assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "tutor").Info("reply resolved", "page", "abc")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "reply resolved", entry.Message)
	assert.Equal(t, "tutor", entry.ContextMap()["component"])
	assert.Equal(t, "abc", entry.ContextMap()["page"])
}
