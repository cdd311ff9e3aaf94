package models

type Configuration struct {
	App       AppConfiguration       `mapstructure:"app"       validate:"required"`
	Store     StoreConfiguration     `mapstructure:"store"     validate:"required"`
	Cache     CacheConfiguration     `mapstructure:"cache"`
	Tracing   TracingConfiguration   `mapstructure:"tracing"`
	Profiling ProfilingConfiguration `mapstructure:"profiling"`
}

type AppConfiguration struct {
	AdminSecret    string   `mapstructure:"admin_secret"    validate:"required,min=16"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required"`
	LogLevel       string   `mapstructure:"log_level"       validate:"oneof=debug info warn error fatal panic"`
	Port           int      `mapstructure:"port"            validate:"gte=80,lte=65535"`
	RequestTimeout int      `mapstructure:"request_timeout" validate:"gte=1,lte=300"`
	// RateLimit is the number of public requests allowed per minute and client IP.
	// Zero disables rate limiting.
	RateLimit int `mapstructure:"rate_limit" validate:"gte=0"`
}

type StoreConfiguration struct {
	Type       string                       `mapstructure:"type"       validate:"required,oneof=mongodb postgres sqlite filesystem"`
	Timeout    int                          `mapstructure:"timeout"    validate:"gte=1,lte=120"`
	MongoDB    *MongoDBStoreConfiguration    `mapstructure:"mongodb"    validate:"required_if=Type mongodb"`
	SQL        *SQLStoreConfiguration        `mapstructure:"sql"        validate:"required_if=Type postgres,required_if=Type sqlite"`
	Filesystem *FilesystemStoreConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type MongoDBStoreConfiguration struct {
	URI                    string `mapstructure:"uri"                      validate:"required,startswith=mongodb"`
	Database               string `mapstructure:"database"                 validate:"required"`
	Collection             string `mapstructure:"collection"               validate:"required"`
	ServerSelectionTimeout int    `mapstructure:"server_selection_timeout" validate:"gte=1,lte=120"`
	MaxPoolSize            uint64 `mapstructure:"max_pool_size"`
}

type SQLStoreConfiguration struct {
	DSN   string `mapstructure:"dsn"   validate:"required"`
	Table string `mapstructure:"table" validate:"required"`
}

type FilesystemStoreConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type CacheConfiguration struct {
	Type   string                    `mapstructure:"type"   validate:"omitempty,oneof=redis valkey"`
	Redis  *RedisCacheConfiguration  `mapstructure:"redis"  validate:"required_if=Type redis"`
	Valkey *ValkeyCacheConfiguration `mapstructure:"valkey" validate:"required_if=Type valkey"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ValkeyCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type TracingConfiguration struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"     validate:"required_if=Enabled true"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

type ProfilingConfiguration struct {
	Enabled         bool   `mapstructure:"enabled"`
	ServerAddress   string `mapstructure:"server_address"   validate:"required_if=Enabled true"`
	ApplicationName string `mapstructure:"application_name"`
}

// Connection returns the connection string of the configured store type.
func (s *StoreConfiguration) Connection() string {
	switch s.Type {
	case "mongodb":
		if s.MongoDB != nil {
			return s.MongoDB.URI
		}
	case "postgres", "sqlite":
		if s.SQL != nil {
			return s.SQL.DSN
		}
	case "filesystem":
		if s.Filesystem != nil {
			return s.Filesystem.Directory
		}
	}
	return ""
}
