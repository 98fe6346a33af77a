package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SMILE_APP_ENV" required:"true"`
	Port         string   `envconfig:"SMILE_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"SMILE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"SMILE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SMILE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SMILE_DB_DSN"`

	Host     string `envconfig:"SMILE_DB_HOST"`
	Port     int    `envconfig:"SMILE_DB_PORT" default:"5432"`
	User     string `envconfig:"SMILE_DB_USER"`
	Password string `envconfig:"SMILE_DB_PASSWORD"`
	Name     string `envconfig:"SMILE_DB_NAME"`
	SSLMode  string `envconfig:"SMILE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMILE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMILE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMILE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMILE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMILE_REDIS_URL"`
	Address      string        `envconfig:"SMILE_REDIS_ADDR"`
	Password     string        `envconfig:"SMILE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMILE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMILE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMILE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMILE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMILE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMILE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SMILE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SMILE_JWT_ISSUER" default:"smileinventory"`
	ExpirationMinutes      int    `envconfig:"SMILE_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"SMILE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SMILE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SMILE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SMILE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SMILE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SMILE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SMILE_AUTH_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"SMILE_AUTH_LOGIN_IP_LIMIT" default:"10"`
	LoginEmailLimit int           `envconfig:"SMILE_AUTH_LOGIN_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SMILE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
