package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // godotenv loads a local .env file into the environment
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database, broker and token settings are optional:
// an empty value disables the feature that depends on it.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	Locale         string // default chart locale ("zh" or "en")
	MaxSeatsPerRow int    // upper bound for seats per row accepted from the form
	MaxUploadBytes int64  // maximum accepted attendee list size
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address; empty disables the export audit
	DBPort         string // database port number
	DBName         string // database name
	AMQPURL        string // RabbitMQ URL; empty disables seatmap events
	JWTSecret      string // secret for operator tokens; empty leaves export history open
	LogLevel       string // zap level (debug, info, warn, error)
	LogDir         string // directory the event consumer appends seatmap.log to
}

// Load reads a .env file when present, then builds a Config from the
// environment.  Malformed numeric values are fatal.
func Load() Config {
	_ = godotenv.Load() // a missing .env file is not an error
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		Locale:         getenv("SEATMAP_LOCALE", "zh"),
		MaxSeatsPerRow: mustInt("SEATMAP_MAX_SEATS_PER_ROW", 30),
		MaxUploadBytes: int64(mustInt("SEATMAP_MAX_UPLOAD_BYTES", 10<<20)),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "seatmap"),
		AMQPURL:        firstEnv("RABBITMQ_URL", "AMQP_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogDir:         getenv("SEATMAP_LOG_DIR", "logs"),
	}
}

// DBEnabled reports whether enough settings are present to open MySQL.
func (c Config) DBEnabled() bool { return c.DBHost != "" && c.DBUser != "" }

// mustInt reads an integer variable, falling back to def when unset.  A
// value that does not parse logs a fatal error and exits.
func mustInt(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// firstEnv returns the first non-empty variable among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
