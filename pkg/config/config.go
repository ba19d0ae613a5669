package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Store   StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DIANDA_APP_ENV" required:"true"`
	Port         string `envconfig:"DIANDA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DIANDA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DIANDA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Driver selects the gorm dialector. The default sqlite driver keeps the
	// cart store in a local file, mirroring the storefront's original
	// browser-local persistence; postgres is available for shared deployments.
	Driver      string `envconfig:"DIANDA_DB_DRIVER" default:"sqlite"`
	DSN         string `envconfig:"DIANDA_DB_DSN" default:"dianda.db"`
	AutoMigrate bool   `envconfig:"DIANDA_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"DIANDA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DIANDA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DIANDA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DIANDA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

// IsSQLite reports whether the local-file driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	// URL is optional; when empty the catalog cache is disabled and every
	// catalog load goes straight to the source.
	URL          string        `envconfig:"DIANDA_REDIS_URL"`
	PoolSize     int           `envconfig:"DIANDA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DIANDA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DIANDA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DIANDA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DIANDA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type CatalogConfig struct {
	SourceURL    string        `envconfig:"DIANDA_CATALOG_URL"`
	FallbackPath string        `envconfig:"DIANDA_CATALOG_FALLBACK_PATH" default:"products.json"`
	FetchTimeout time.Duration `envconfig:"DIANDA_CATALOG_FETCH_TIMEOUT" default:"10s"`
	CacheTTL     time.Duration `envconfig:"DIANDA_CATALOG_CACHE_TTL" default:"15m"`
	PageSize     int           `envconfig:"DIANDA_CATALOG_PAGE_SIZE" default:"8"`
}

type StoreConfig struct {
	Name             string `envconfig:"DIANDA_STORE_NAME" default:"DIANDA S'STORE"`
	WhatsAppNumber   string `envconfig:"DIANDA_STORE_WHATSAPP_NUMBER" default:"22676593914"`
	DialPrefix       string `envconfig:"DIANDA_STORE_DIAL_PREFIX" default:"+226"`
	Location         string `envconfig:"DIANDA_STORE_LOCATION" default:"Ouagadougou, Burkina Faso"`
	BaseURL          string `envconfig:"DIANDA_STORE_BASE_URL" default:"http://localhost:8080"`
	PlaceholderImage string `envconfig:"DIANDA_STORE_PLACEHOLDER_IMAGE" default:"/static/img/placeholder.png"`
	CartStorageKey   string `envconfig:"DIANDA_CART_STORAGE_KEY" default:"dianada_cart"`
}
