package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadValid(t *testing.T) {
	configFile := createTempConfigFile(t)
	defer os.Remove(configFile)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.ServerAddress)
	require.Equal(t, 8080, cfg.ServerPort)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "memberportal", cfg.MongoDatabase)
	require.Equal(t, "localhost:6379", cfg.RedisAddress)
	require.Equal(t, "", cfg.RedisPassword)
}

func TestLoadConfigInvalidPath(t *testing.T) {
	configFile := createTempConfigFile(t)
	defer os.Remove(configFile)

	_, err := Load("invalid_path_config.env")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func createTempConfigFile(t *testing.T) string {
	configFile := "temp_config.env"
	file, err := os.Create(configFile)
	require.NoError(t, err)
	defer file.Close()

	_, err = file.WriteString("SERVER_ADDRESS=127.0.0.1\n")
	require.NoError(t, err)

	_, err = file.WriteString("SERVER_PORT=8080\n")
	require.NoError(t, err)

	_, err = file.WriteString("MONGO_URI=mongodb://localhost:27017\n")
	require.NoError(t, err)

	_, err = file.WriteString("MONGO_DATABASE=memberportal\n")
	require.NoError(t, err)

	_, err = file.WriteString("REDIS_ADDRESS=localhost:6379\n")
	require.NoError(t, err)

	return configFile
}
