package config

// App is the top-level service configuration. Connection settings for
// Postgres and Redis live beside their clients in pkg/pg and pkg/redis.
type App struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"platform-api"`
	AppEnv      string `env:"APP_ENV" envDefault:"development"`

	// JWTSecret signs and verifies actor tokens.
	JWTSecret string `env:"JWT_SECRET,required"`

	// UpgradeURLBase prefixes the upgrade links attached to payment
	// denials, e.g. "https://app.example.com/billing/upgrade".
	UpgradeURLBase string `env:"UPGRADE_URL_BASE"`

	// MatrixPath and RolloutPath point at the YAML files seeding the
	// entitlement matrix and country rollout policies.
	MatrixPath  string `env:"ENTITLEMENT_MATRIX_PATH" envDefault:"config/matrix.yml"`
	PricingPath string `env:"COUNTRY_PRICING_PATH" envDefault:"config/pricing.yml"`
	RolloutPath string `env:"ROLLOUT_POLICY_PATH" envDefault:"config/rollout.yml"`

	// AuditBatchSize and AuditFlushIntervalMS tune the async audit
	// writer used for read-path denial events.
	AuditBatchSize       int `env:"AUDIT_BATCH_SIZE" envDefault:"64"`
	AuditFlushIntervalMS int `env:"AUDIT_FLUSH_INTERVAL_MS" envDefault:"500"`

	// DecisionCacheTTLSeconds bounds how long cached entitlement
	// decisions may outlive a matrix or add-on change.
	DecisionCacheTTLSeconds int `env:"DECISION_CACHE_TTL_SECONDS" envDefault:"60"`
}
