package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	prod, err := NewLogger(true, "")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zap.DebugLevel))
	assert.True(t, prod.Core().Enabled(zap.InfoLevel))

	dev, err := NewLogger(false, "")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))

	quiet, err := NewLogger(false, "warn")
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.InfoLevel))

	fallback, err := NewLogger(true, "loud")
	require.NoError(t, err)
	assert.True(t, fallback.Core().Enabled(zap.InfoLevel), "unknown levels keep the default")
}

func TestGetLoggerIsShared(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}
