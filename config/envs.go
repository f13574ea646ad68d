package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string        // Host IP for the server
	RESTPort          int           // Port for the REST API
	GinMode           string        // Mode for the Gin framework (e.g., release, debug, test)
	PostsDir          string        // Directory holding the markdown posts
	SiteURL           string        // Public origin used in sitemap links
	Web3FormsEndpoint string        // Contact form submission endpoint
	Web3FormsKey      string        // Access key for the submission endpoint
	DBHost            string        // Hostname or IP address for the database, empty disables the archive
	DBPort            int           // Port number for the database
	DBUser            string        // Username for the database
	DBPassword        string        // Password for the database
	DBName            string        // Name of the database
	RedisAddr         string        // Redis address, empty disables rate limiting
	ContactRateLimit  int           // Contact messages allowed per client per window
	ContactRateWindow time.Duration // Rate limit window
	JWTSecret         string        // Secret key for JWT signing
	JWTIssuer         string        // Issuer claim for JWTs
	AdminUser         string        // Admin username
	AdminPasswordHash string        // Bcrypt hash of the admin password
	MazeSize          int           // Side length of the fixed maze in cells
	MazeChunkSize     int           // Chunk side length of the endless maze
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		HostIP:            getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:          getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		PostsDir:          getEnvWithDefault("POSTS_DIR", "posts"),
		SiteURL:           getEnvWithDefault("SITE_URL", "http://localhost:8080"),
		Web3FormsEndpoint: getEnvWithDefault("WEB3FORMS_ENDPOINT", "https://api.web3forms.com/submit"),
		Web3FormsKey:      getEnvWithDefault("WEB3FORMS_ACCESS_KEY", ""),
		DBHost:            getEnvWithDefault("DB_HOST", ""),
		DBPort:            getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:            getEnvWithDefault("DB_USER", ""),
		DBPassword:        getEnvWithDefault("DB_PASS", ""),
		DBName:            getEnvWithDefault("DB_NAME", "portfolio"),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		ContactRateLimit:  getEnvAsIntWithDefault("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: getEnvAsDurationWithDefault("CONTACT_RATE_WINDOW", time.Hour),
		JWTSecret:         getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:         getEnvWithDefault("JWT_ISSUER", "vinom-portfolio"),
		AdminUser:         getEnvWithDefault("ADMIN_USER", ""),
		AdminPasswordHash: getEnvWithDefault("ADMIN_PASSWORD_HASH", ""),
		MazeSize:          getEnvAsIntWithDefault("MAZE_SIZE", 30),
		MazeChunkSize:     getEnvAsIntWithDefault("MAZE_CHUNK_SIZE", 10),
	}
}

// Validate checks the values the HTTP server cannot start without.
func (c Config) Validate() error {
	var missing []string
	for key, value := range map[string]string{
		"JWT_SECRET":           c.JWTSecret,
		"ADMIN_USER":           c.AdminUser,
		"ADMIN_PASSWORD_HASH":  c.AdminPasswordHash,
		"WEB3FORMS_ACCESS_KEY": c.Web3FormsKey,
	} {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("environment variables not set: %s", strings.Join(missing, ", "))
	}

	if c.RESTPort <= 0 || c.RESTPort > 65535 {
		return fmt.Errorf("REST_PORT out of range: %d", c.RESTPort)
	}
	if c.RedisAddr != "" && (c.ContactRateLimit <= 0 || c.ContactRateWindow <= 0) {
		return errors.New("CONTACT_RATE_LIMIT and CONTACT_RATE_WINDOW must be positive")
	}
	return nil
}

// MongoURI returns the connection string for the archive database, or "" when
// no database is configured.
func (c Config) MongoURI() string {
	if c.DBHost == "" {
		return ""
	}
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or logs a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault parses values like "90s" or "1h".
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return value
}
