package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Lock     LockConfig
	Audit    AuditConfig
	LogLevel string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LockConfig 場次鎖的等待上限與存活時間
type LockConfig struct {
	Wait          time.Duration
	TTL           time.Duration
	RetryInterval time.Duration
}

type AuditBackend string

const (
	AuditBackendRedis AuditBackend = "redis"
	AuditBackendKafka AuditBackend = "kafka"
)

type AuditConfig struct {
	Backend      AuditBackend
	StreamKey    string
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
}

var AppConfig *Config

// LoadConfig 讀取環境變數；envFile 存在時先以 godotenv 載入 (不覆蓋既有變數)
func LoadConfig(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Lock:     GetLockConfig(),
		Audit:    GetAuditConfig(),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 10,
		MinConns: 1,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8081"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Lock: LockConfig{
			Wait:          10 * time.Second,
			TTL:           30 * time.Second,
			RetryInterval: 2 * time.Millisecond,
		},
		Audit: AuditConfig{
			Backend:   AuditBackendRedis,
			StreamKey: "audit:test:stream",
		},
		LogLevel: "warn",
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("PORT", "8080"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25)),
		MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func GetLockConfig() LockConfig {
	return LockConfig{
		Wait:          getEnvDuration("LOCK_WAIT", 2*time.Second),
		TTL:           getEnvDuration("LOCK_TTL", 15*time.Second),
		RetryInterval: getEnvDuration("LOCK_RETRY_INTERVAL", 20*time.Millisecond),
	}
}

func GetAuditConfig() AuditConfig {
	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	return AuditConfig{
		Backend:      AuditBackend(getEnv("AUDIT_BACKEND", string(AuditBackendRedis))),
		StreamKey:    getEnv("AUDIT_STREAM_KEY", "audit:stream"),
		KafkaBrokers: brokers,
		KafkaTopic:   getEnv("AUDIT_KAFKA_TOPIC", "inventory-audit"),
		KafkaGroupID: getEnv("AUDIT_KAFKA_GROUP", "inventory-audit-workers"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
