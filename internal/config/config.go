package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string     `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis      `yaml:"redis"`
	Suggestion Suggestion `yaml:"suggestion"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Suggestion configures the remote move-suggestion service. An empty APIKey
// switches the opponent to heuristic-only mode; it is not an error.
type Suggestion struct {
	APIKey         string `yaml:"api-key" env:"SUGGESTION_API_KEY" env-default:""`
	BaseURL        string `yaml:"base-url" env:"SUGGESTION_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model          string `yaml:"model" env:"SUGGESTION_MODEL" env-default:"gpt-4o-mini"`
	TimeoutSeconds int    `yaml:"timeout-seconds" env:"SUGGESTION_TIMEOUT_SECONDS" env-default:"10"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
