package config

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "SMILE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SMILE_DB_DSN"
	EnvDBHost = "SMILE_DB_HOST"
	EnvDBUser = "SMILE_DB_USER"
	EnvDBName = "SMILE_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
