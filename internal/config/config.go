package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"
)

// Default upstream base URLs.  Overridable via env so tests can point the
// clients at a local stub server.
const (
    DefaultPlacesBaseURL    = "https://places.googleapis.com/v1"
    DefaultGeocodingBaseURL = "https://maps.googleapis.com/maps/api"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The JWT key material and the places API key are
// process-wide state initialized once at startup and immutable afterwards.
type Config struct {
    Env              string        // application environment (e.g. "dev", "prod")
    Port             string        // HTTP port to listen on
    DBUser           string        // database username
    DBPass           string        // database password (optional)
    DBHost           string        // database host address
    DBPort           string        // database port number
    DBName           string        // database name
    DBMaxOpenConns   int           // connection pool size (0 = driver default sizing)
    DBMaxIdleConns   int           // idle connections kept in the pool
    AccessSecret     string        // Base64 secret signing access tokens
    RefreshSecret    string        // Base64 secret signing refresh tokens (independent of AccessSecret)
    AccessTTL        time.Duration // access token time-to-live
    RefreshTTL       time.Duration // refresh token time-to-live
    BcryptCost       int           // bcrypt cost for password hashing
    PlacesAPIKey     string        // Google Places API key
    PlacesBaseURL    string        // places API base URL
    GeocodingBaseURL string        // geocoding API base URL
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  TTLs are expressed
// in milliseconds to match how operators already size them.
func Load() Config {
    return Config{
        Env:              must("APP_ENV"),
        Port:             must("APP_PORT"),
        DBUser:           must("DB_USER"),
        DBPass:           os.Getenv("DB_PASS"), // empty allowed
        DBHost:           must("DB_HOST"),
        DBPort:           must("DB_PORT"),
        DBName:           must("DB_NAME"),
        DBMaxOpenConns:   intOr("DB_MAX_OPEN_CONNS", 0),
        DBMaxIdleConns:   intOr("DB_MAX_IDLE_CONNS", 0),
        AccessSecret:     must("JWT_ACCESS_SECRET"),
        RefreshSecret:    must("JWT_REFRESH_SECRET"),
        AccessTTL:        time.Duration(mustInt("JWT_ACCESS_TTL_MS")) * time.Millisecond,
        RefreshTTL:       time.Duration(mustInt("JWT_REFRESH_TTL_MS")) * time.Millisecond,
        BcryptCost:       mustInt("BCRYPT_COST"),
        PlacesAPIKey:     must("GOOGLE_PLACES_API_KEY"),
        PlacesBaseURL:    envOr("PLACES_BASE_URL", DefaultPlacesBaseURL),
        GeocodingBaseURL: envOr("GEOCODING_BASE_URL", DefaultGeocodingBaseURL),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// intOr returns the integer value of key or def when unset/empty.  An
// unparsable value is fatal, like mustInt.
func intOr(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// envOr returns the value of key or def when unset/empty.
func envOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
