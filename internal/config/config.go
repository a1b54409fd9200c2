package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Адрес HTTP-хоста ("host:port")
	BaseURL string `env:"BASE_URL"`

	// Каталог данных приложения (файл БД и ключ шифрования).
	// Пустое значение — платформенный каталог пользователя.
	DataDir string `env:"DIARY_DATA_PATH"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес HTTP-сервера (host:port)")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "каталог данных (БД и ключ шифрования)")

	flag.Parse()

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	return cfg
}
