package config

const (
	EnvPrefix = "DIANDA"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	EnvAppEnv   = "DIANDA_APP_ENV"
	EnvAppPort  = "DIANDA_APP_PORT"
	EnvLogLevel = "DIANDA_LOG_LEVEL"

	EnvDBDriver = "DIANDA_DB_DRIVER"
	EnvDBDSN    = "DIANDA_DB_DSN"

	EnvRedisURL = "DIANDA_REDIS_URL"

	EnvCatalogURL      = "DIANDA_CATALOG_URL"
	EnvCatalogFallback = "DIANDA_CATALOG_FALLBACK_PATH"

	EnvWhatsAppNumber = "DIANDA_STORE_WHATSAPP_NUMBER"
	EnvStoreBaseURL   = "DIANDA_STORE_BASE_URL"
)
