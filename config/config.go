package config

import (
	"os"
	"strconv"
	"strings"
)

// Store backends accepted by GetStoreBackend.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// GetPort returns the HTTP port, defaulting to 8080
func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "8080"
	}
	return port
}

// GetGeminiModel returns the Gemini model to use from environment variable
// Defaults to "gemini-2.5-flash" if not set
func GetGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		return "gemini-2.5-flash"
	}
	return model
}

// GetGeminiAPIKey returns the Gemini API key. Empty disables the generative fallback.
func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// GetMongoDBURI returns the MongoDB connection URI from environment variable
func GetMongoDBURI() string {
	return os.Getenv("MONGODB_URI")
}

// GetMongoDatabase returns the MongoDB database name, defaulting to "comics"
func GetMongoDatabase() string {
	name := os.Getenv("MONGODB_DATABASE")
	if name == "" {
		return "comics"
	}
	return name
}

// GetDatabaseURL returns the Postgres connection string used by the postgres backend
func GetDatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func GetSupabaseURL() string {
	return os.Getenv("SUPABASE_URL")
}

// GetSupabaseKey returns the anon (public) key of the Supabase project
func GetSupabaseKey() string {
	return os.Getenv("SUPABASE_KEY")
}

// GetStoreBackend returns which backend holds reads and presence.
// Unknown values fall back to memory.
func GetStoreBackend() string {
	switch b := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))); b {
	case BackendSupabase, BackendPostgres, BackendMongo:
		return b
	default:
		return BackendMemory
	}
}

// GetCatalogPath returns the catalog file to load and watch. Empty means the embedded catalog.
func GetCatalogPath() string {
	return os.Getenv("CATALOG_PATH")
}

// GetIPFSAPIURL returns the IPFS-compatible API used to store chat blobs.
// Empty keeps blobs in process memory.
func GetIPFSAPIURL() string {
	return os.Getenv("IPFS_API_URL")
}

// GetReadLimit returns how many distinct stories a user may open, defaulting to 5
func GetReadLimit() int {
	n, err := strconv.Atoi(os.Getenv("READ_LIMIT"))
	if err != nil || n <= 0 {
		return 5
	}
	return n
}

// GetLogLevel returns the zap level name, defaulting to "info"
func GetLogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return strings.ToLower(level)
}

// GetAllowedOrigins returns the allowed CORS origins from environment variable
func GetAllowedOrigins() string {
	return os.Getenv("ALLOWED_ORIGINS")
}
