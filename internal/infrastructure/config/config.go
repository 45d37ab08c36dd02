package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807 e fileUrls
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

// StorageConfig seleciona e configura o backend de blobs.
// Driver: "filesystem" (padrão) ou "minio".
// EncryptionKey, quando presente, ativa a transformação de criptografia
// entre o repositório de blobs e o armazenamento bruto.
type StorageConfig struct {
	Driver        string
	Root          string // raiz no filesystem local
	Endpoint      string // endpoint MinIO
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	EncryptionKey string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do arquivo .env
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env é opcional em produção; sem ele valem as variáveis de ambiente
	_ = viper.ReadInConfig()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORAGE_DRIVER", "filesystem")
	viper.SetDefault("STORAGE_ROOT", "uploads")
	viper.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port:    viper.GetString("PORT"),
			Host:    viper.GetString("HOST"),
			BaseURL: viper.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetInt("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSL_MODE"),
			MaxConns:    viper.GetInt("DB_MAX_CONNS"),
			MinConns:    viper.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: viper.GetInt("DB_MAX_IDLE_TIME"),
		},
		Storage: StorageConfig{
			Driver:        viper.GetString("STORAGE_DRIVER"),
			Root:          viper.GetString("STORAGE_ROOT"),
			Endpoint:      viper.GetString("MINIO_ENDPOINT"),
			AccessKey:     viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey:     viper.GetString("MINIO_SECRET_KEY"),
			Bucket:        viper.GetString("MINIO_BUCKET"),
			UseSSL:        viper.GetBool("MINIO_USE_SSL"),
			EncryptionKey: viper.GetString("STORAGE_ENCRYPTION_KEY"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetString("JWT_ACCESS_EXPIRY"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("SMTP_FROM"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
