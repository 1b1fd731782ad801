package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "publisher").Warn("section skipped", "section", "api")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "section skipped", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"component": "publisher", "section": "api"}, entries[0].ContextMap())
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "production", ""} {
		t.Run(mode, func(t *testing.T) {
			l, err := New(mode)
			require.NoError(t, err)
			require.NotNil(t, l)
			l.Info("hello")
		})
	}

	Nop().Error("discarded", "k", 1)
}
