package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rrens/rag-query-client/internal/config"
	"github.com/Rrens/rag-query-client/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Console(t *testing.T) {
	closer, err := logging.Setup(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	closer, err := logging.Setup(config.LoggingConfig{Level: "chatty"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "client.log")

	closer, err := logging.Setup(config.LoggingConfig{Level: "info", Format: "json", File: file})
	require.NoError(t, err)

	log.Info().Str("query_id", "q1").Msg("query submitted")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"query_id":"q1"`)
}
