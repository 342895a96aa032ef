package configs

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort      string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPass       string
	DBName       string
	RedisHost    string
	RedisPort    string
	KafkaBrokers string
	KafkaTopic   string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3UseSSL     bool
	AutoMigrate  bool
}

func LoadConfig() *Config {
	return &Config{
		AppPort:      GetEnv("CHAT_APP_PORT", ":8086"),
		DBHost:       GetEnv("CHAT_DB_HOST", "localhost"),
		DBPort:       GetEnv("CHAT_DB_PORT", "5432"),
		DBUser:       GetEnv("CHAT_DB_USER", "postgres"),
		DBPass:       GetEnv("CHAT_DB_PASS", "postgres"),
		DBName:       GetEnv("CHAT_DB_NAME", "chat_db"),
		RedisHost:    GetEnv("CHAT_REDIS_HOST", "localhost"),
		RedisPort:    GetEnv("CHAT_REDIS_PORT", "6379"),
		KafkaBrokers: GetEnv("CHAT_KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:   GetEnv("CHAT_KAFKA_TOPIC", "chat.events"),
		S3Endpoint:   GetEnv("CHAT_S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:  GetEnv("CHAT_S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:  GetEnv("CHAT_S3_SECRET_KEY", "minioadmin"),
		S3Bucket:     GetEnv("CHAT_S3_BUCKET", "chat-attachments"),
		S3UseSSL:     GetEnv("CHAT_S3_USE_SSL", "") == "true",
		AutoMigrate:  GetEnv("AUTO_MIGRATE", "true") == "true",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func GetEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
