package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the OpsDesk API.
type Config struct {
	APIPort     int      `mapstructure:"api_port"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Database settings. Type selects the driver: "postgres" or "sqlite".
	DatabaseType            string `mapstructure:"database_type"`
	DatabaseHost            string `mapstructure:"database_host"`
	DatabasePort            string `mapstructure:"database_port"`
	DatabaseName            string `mapstructure:"database_name"`
	DatabaseUser            string `mapstructure:"database_user"`
	DatabasePassword        string `mapstructure:"database_password"`
	DatabaseSSLMode         string `mapstructure:"database_ssl_mode"`
	DatabaseMaxConns        int    `mapstructure:"database_max_conns"`
	DatabaseMaxIdle         int    `mapstructure:"database_max_idle"`
	DatabaseConnMaxLifetime string `mapstructure:"database_conn_max_lifetime"`
	DatabasePath            string `mapstructure:"database_path"`

	// Auth settings. JWTSecret must be set; the server refuses to boot
	// without a signing secret.
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`

	// Document storage. Backend is "local" or "s3".
	StorageBackend  string `mapstructure:"storage_backend"`
	StorageLocalDir string `mapstructure:"storage_local_dir"`
	S3Endpoint      string `mapstructure:"s3_endpoint"`
	S3Region        string `mapstructure:"s3_region"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	S3AccessKey     string `mapstructure:"s3_access_key"`
	S3SecretKey     string `mapstructure:"s3_secret_key"`

	// Login rate limiting (requests per second per IP, and burst).
	LoginRateLimit float64 `mapstructure:"login_rate_limit"`
	LoginRateBurst int     `mapstructure:"login_rate_burst"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("OPSDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 8081
		log.Println("api_port not specified, using default 8081")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
		log.Println("database_type not specified, using sqlite")
	}
	if cfg.DatabaseType == "sqlite" && cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/opsdesk.db"
		log.Println("database_path not specified, using default data/opsdesk.db")
	}
	if cfg.DatabaseType == "postgres" {
		if cfg.DatabaseHost == "" {
			cfg.DatabaseHost = "localhost"
		}
		if cfg.DatabasePort == "" {
			cfg.DatabasePort = "5432"
		}
		if cfg.DatabaseSSLMode == "" {
			cfg.DatabaseSSLMode = "disable"
		}
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt_secret must be set")
	}
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = 24 * time.Hour
	}

	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "local"
		log.Println("storage_backend not specified, using local")
	}
	if cfg.StorageBackend == "local" && cfg.StorageLocalDir == "" {
		cfg.StorageLocalDir = "data/documents"
		log.Println("storage_local_dir not specified, using default data/documents")
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	if cfg.LoginRateLimit == 0 {
		cfg.LoginRateLimit = 5
	}
	if cfg.LoginRateBurst == 0 {
		cfg.LoginRateBurst = 10
	}

	return &cfg, nil
}
