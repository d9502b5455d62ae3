package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config stores configuration values for the application.
// These values can be read from a configuration file or environment variables.
type Config struct {
	// ServerAddress is the IP address where the server will listen.
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	// ServerPort is the port on which the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT"`
	// MongoURI is the connection string for the document database.
	MongoURI string `mapstructure:"MONGO_URI"`
	// MongoDatabase is the name of the database holding the user collection.
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	// RedisAddress is the host:port of the Redis server backing sessions.
	RedisAddress string `mapstructure:"REDIS_ADDRESS"`
	// RedisPassword is the password of the Redis server, empty when unset.
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
}

// Load loads configuration settings from a specified file or environment variables.
// If both a configuration file and environment variables are used, environment variables take precedence.
func Load(filePath string) (*Config, error) {
	viper.SetConfigFile(filePath)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}
