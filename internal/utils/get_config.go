package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// defaults lists every key the service reads. Keys missing here are still
// accepted from config.yaml but cannot be overridden from the environment.
var defaults = map[string]string{
	"APP_ENV":   "development",
	"APP_PORT":  "3000",
	"APP_URL":   "http://localhost:3000",
	"LOG_LEVEL": "info",
	"LOG_FILE":  "./logs/app.log",

	"CORS_ORIGINS": "*",

	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "",
	"DB_NAME":     "preben_prepper",

	"DB_MAX_OPEN_CONNS": "25",
	"DB_MAX_IDLE_CONNS": "5",

	"JWT_SECRET":     "",
	"JWT_EXPIRES_IN": "168h",
	"BCRYPT_COST":    "10",

	"RATE_LIMIT_ENABLED":  "true",
	"RATE_LIMIT_MAX":      "100",
	"RATE_LIMIT_WINDOW":   "15m",
	"AUTH_RATE_LIMIT_MAX": "5",

	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       "0",

	"RABBITMQ_URL":             "",
	"RABBITMQ_PUBLISH_TIMEOUT": "2s",

	"SMTP_HOST":          "",
	"SMTP_PORT":          "587",
	"SMTP_SENDER_NAME":   "Preben Prepper",
	"SMTP_AUTH_EMAIL":    "",
	"SMTP_AUTH_PASSWORD": "",

	"AWS_S3_BUCKET":  "",
	"AWS_S3_REGION":  "",
	"AWS_ACCESS_KEY": "",
	"AWS_SECRET_KEY": "",

	"ADMIN_EMAIL":    "",
	"ADMIN_PASSWORD": "",
}

var (
	mu     sync.RWMutex
	config = map[string]string{}
)

// LoadConfig reads config.yaml (if present), then .env, then the process
// environment. Later sources win.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Config file %s not loaded: %s\n", path, err)
	} else {
		raw := map[string]interface{}{}
		if err := yaml.Unmarshal(file, &raw); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}
		for k, v := range raw {
			values[k] = fmt.Sprint(v)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}
	for k := range defaults {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}

	mu.Lock()
	config = values
	mu.Unlock()
}

func GetConfig(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return config[key]
}

// SetConfig overrides a single key. Used by tests and the CLI flags.
func SetConfig(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	config[key] = value
}

func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return n
}

func GetConfigBool(key string) bool {
	switch strings.ToLower(GetConfig(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func GetConfigDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(GetConfig(key))
	if err != nil {
		return fallback
	}
	return d
}
