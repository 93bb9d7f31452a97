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

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Verification struct {
		// TTL одноразового кода подтверждения, секунды
		OtpTTL int `yaml:"otp_ttl"`
	} `yaml:"verification"`

	Roles struct {
		// Роли, которым запрещен канал Diia и которые адресуются как officer-realm
		Officer []string `yaml:"officer"`
		// Роль гражданина для citizen-realm
		Citizen string `yaml:"citizen"`
	} `yaml:"roles"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Diia struct {
		// Внешний шлюз доставки кодов в Дію
		GatewayURL string `yaml:"gateway_url"`
		Timeout    int    `yaml:"timeout"` // seconds
	} `yaml:"diia"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию из config.yaml или из переменных
// окружения (режим теста/контейнера, когда задан DATABASE_URL).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
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

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	if ttl := os.Getenv("OTP_TTL"); ttl != "" {
		cfg.Verification.OtpTTL, _ = strconv.Atoi(ttl)
	}

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")
	cfg.Diia.GatewayURL = os.Getenv("DIIA_GATEWAY_URL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// GetConfig возвращает загруженную конфигурацию
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyDefaults(cfg *Config) {
	if cfg.Verification.OtpTTL <= 0 {
		cfg.Verification.OtpTTL = 60
	}
	if len(cfg.Roles.Officer) == 0 {
		cfg.Roles.Officer = []string{"officer", "unregistered-officer"}
	}
	if cfg.Roles.Citizen == "" {
		cfg.Roles.Citizen = "citizen"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Diia.Timeout <= 0 {
		cfg.Diia.Timeout = 10
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "User Settings"
	}
}
