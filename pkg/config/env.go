package config

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "PRELAUNCH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PRELAUNCH_DB_DSN"
	EnvDBHost = "PRELAUNCH_DB_HOST"
	EnvDBUser = "PRELAUNCH_DB_USER"
	EnvDBName = "PRELAUNCH_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
