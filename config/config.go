package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the server needs at startup.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Listen address
	JwtSecret             string `env:"JWT_SECRET,required"`                       // HMAC secret for dashboard session tokens
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // Connection URI
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA" envDefault:"submittedDB"` // Process record database
	MongoDB_DBName_Master string `env:"MONGODB_DBNAME_MASTER" envDefault:"Sasaki_Coating_MasterDB"` // Master data + users database
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins, comma separated, * = all
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow cookies/credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Max requests per window (0 = unlimited)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window length in seconds
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Toggle rate limiting
	// Pagination
	Paginate_DefaultLimit int64 `env:"PAGINATE_DEFAULT_LIMIT" envDefault:"10"` // Page size when the request omits limit
	Paginate_MaxLimit     int64 `env:"PAGINATE_MAX_LIMIT" envDefault:"100"`    // Hard cap on page size
	// Approval statistics cache
	StatsCacheTTL int `env:"STATS_CACHE_TTL" envDefault:"30"` // Seconds before cached approval stats expire
	// Bootstrap admin account, created at startup when no admin exists.
	// Left empty, the seed step is skipped.
	AdminUsername        string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminInitialPassword string `env:"ADMIN_INITIAL_PASSWORD"`
	// Dev mode: resolve the acting user from the X-Dashboard-User header
	// instead of requiring a signed session token.
	DevAuthHeader bool `env:"DEV_AUTH_HEADER" envDefault:"false"`
	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // trace|debug|info|warn|error
	LogDir   string `env:"LOG_DIR" envDefault:"logs"`   // Directory for rotated log files
	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Serve HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Certificate path (.crt or .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Private key path (.key)
}

// getEnvPath returns the env file path for the current GO_ENV.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt here: the logger is not initialized yet at config time
		fmt.Printf("cannot determine working directory: %v\n", err)
		return ""
	}

	// Walk up until a config/env directory is found
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file for GO_ENV and parses it into a Configuration.
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("config/env directory not found\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("cannot load env file at %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("config parse error: %+v\n", err)
		return nil
	}

	return &cfg
}
