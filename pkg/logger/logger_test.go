package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/pkg/logger"
)

func TestNew_NivelYRedireccionGlobal(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "warn"})
	require.NotNil(t, l)
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel(),
		"el logger global queda alineado con la configuración")
}

func TestNew_NivelInvalidoCaeAInfo(t *testing.T) {
	logger.New(logger.Config{Env: "development", Level: "nivel-inexistente"})
	assert.Equal(t, zerolog.InfoLevel, log.Logger.GetLevel())
}
