package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	// Upstream - адрес PathFinder API, которому шлюз делегирует
	// аутентификацию и все AI-операции
	Upstream struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"upstream"`

	Sessions struct {
		CookieName   string `yaml:"cookie_name"`
		CookieSecure bool   `yaml:"cookie_secure"`
		TTLHours     int    `yaml:"ttl_hours"`

		Storage struct {
			Type     string `yaml:"type"`      // file, postgres
			BasePath string `yaml:"base_path"` // для file
			DSN      string `yaml:"dsn"`       // для postgres
		} `yaml:"storage"`
	} `yaml:"sessions"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию.
// Если задан UPSTREAM_BASE_URL - конфигурация собирается из переменных
// окружения (режим теста/контейнера), иначе читается config/config.yaml.
func LoadConfig() {
	var cfg Config

	upstreamURL := os.Getenv("UPSTREAM_BASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")

	if upstreamURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Upstream.BaseURL = upstreamURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	cfg.Sessions.Storage.Type = os.Getenv("SESSION_STORAGE_TYPE")
	cfg.Sessions.Storage.BasePath = os.Getenv("SESSION_STORAGE_PATH")
	cfg.Sessions.Storage.DSN = os.Getenv("SESSION_STORAGE_DSN")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Upstream.TimeoutSeconds == 0 {
		cfg.Upstream.TimeoutSeconds = 15
	}
	if cfg.Sessions.CookieName == "" {
		cfg.Sessions.CookieName = "pathfinder_session"
	}
	if cfg.Sessions.TTLHours == 0 {
		cfg.Sessions.TTLHours = 24
	}
	if cfg.Sessions.Storage.Type == "" {
		cfg.Sessions.Storage.Type = "file"
	}
	if cfg.Sessions.Storage.BasePath == "" {
		cfg.Sessions.Storage.BasePath = "./sessions"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
