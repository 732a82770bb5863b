package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "HOMEFINDERZ"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "HOMEFINDERZ_APP_ENV"
	EnvPort     = "HOMEFINDERZ_APP_PORT"
	EnvRedisURL = "HOMEFINDERZ_REDIS_URL"

	EnvJWTSecret = "HOMEFINDERZ_JWT_SECRET"
	EnvJWTIssuer = "HOMEFINDERZ_JWT_ISSUER"

	EnvGCPProjectID   = "HOMEFINDERZ_GCP_PROJECT_ID"
	EnvPubSubViewsSub = "HOMEFINDERZ_PUBSUB_VIEWS_SUBSCRIPTION"

	EnvDBDSN  = "HOMEFINDERZ_DB_DSN"
	EnvDBHost = "HOMEFINDERZ_DB_HOST"
	EnvDBUser = "HOMEFINDERZ_DB_USER"
	EnvDBName = "HOMEFINDERZ_DB_NAME"
)

// legacyDBEnvVars are the discrete connection variables accepted when
// HOMEFINDERZ_DB_DSN is not set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

const (
	ServiceKindAPI        = "api"
	ServiceKindViewWorker = "view-worker"
)
