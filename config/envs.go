package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	RedisAddr       string // host:port of the work-queue Redis
	RedisPassword   string
	QueueTTLSeconds int    // Lifetime of an idle work queue
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	ProblemsFile    string // Optional YAML problem definitions
	MaxEnvCells     int    // Largest grid an environment may allocate
	LogLevel        string
}

// Load reads the configuration from the environment, after loading a .env file if available.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithField("component", "APP").Infof(".env file not found or could not be loaded: %v", err)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	r := &envReader{}
	cfg := Config{
		DBHost:          r.mustGetEnv("DB_HOST"),
		DBPort:          r.mustGetEnvAsInt("DB_PORT"),
		DBUser:          r.mustGetEnv("DB_USER"),
		DBPassword:      r.mustGetEnv("DB_PASS"),
		DBName:          r.mustGetEnv("DB_NAME"),
		RedisAddr:       r.mustGetEnv("REDIS_ADDR"),
		RedisPassword:   getEnvWithDefault("REDIS_PASS", ""),
		QueueTTLSeconds: r.getEnvAsIntWithDefault("QUEUE_TTL_SECONDS", 3600),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       r.mustGetEnv("JWT_SECRET"),
		JWTIssuer:       r.mustGetEnv("JWT_ISSUER"),
		HostIP:          r.mustGetEnv("HOST_IP"),
		RESTPort:        r.mustGetEnvAsInt("REST_PORT"),
		ProblemsFile:    getEnvWithDefault("PROBLEMS_FILE", ""),
		MaxEnvCells:     r.getEnvAsIntWithDefault("MAX_ENV_CELLS", 1<<16),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// envReader keeps the first lookup failure so every key can be read in one pass.
type envReader struct {
	err error
}

// mustGetEnv retrieves the value of an environment variable and records an error if not set.
func (r *envReader) mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists && r.err == nil {
		r.err = fmt.Errorf("environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer.
func (r *envReader) mustGetEnvAsInt(key string) int {
	valueStr := r.mustGetEnv(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

func (r *envReader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	if _, exists := os.LookupEnv(key); !exists {
		return defaultValue
	}
	return r.mustGetEnvAsInt(key)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
