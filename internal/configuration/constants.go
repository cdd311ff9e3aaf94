package configuration

const AppName = "overlay-api"

// Store provider types.
const (
	ProviderMongoDB    = "mongodb"
	ProviderPostgres   = "postgres"
	ProviderSQLite     = "sqlite"
	ProviderFilesystem = "filesystem"
)

// Cache provider types.
const (
	ProviderRedis  = "redis"
	ProviderValkey = "valkey"
)

const (
	CacheAppRateLimitKey = "app:ratelimit:%s"
	CacheRateLimitWindow = 60
)

const (
	DefaultQueryLimit = 50
	MinQueryLimit     = 1
	MaxQueryLimit     = 100
	// DashboardRecentLimit is the number of newest records shown on the dashboard.
	DashboardRecentLimit = 10
)

var ArrayConfigFields = []string{
	"app.allowed_origins",
	"cache.redis.hosts",
	"cache.valkey.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
