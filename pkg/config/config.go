package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
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
	Env          string `envconfig:"PRELAUNCH_APP_ENV" required:"true"`
	Port         string `envconfig:"PRELAUNCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRELAUNCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRELAUNCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRELAUNCH_DB_DSN"`
	Driver string `envconfig:"PRELAUNCH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRELAUNCH_DB_HOST"`
	LegacyPort     int    `envconfig:"PRELAUNCH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRELAUNCH_DB_USER"`
	LegacyPassword string `envconfig:"PRELAUNCH_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRELAUNCH_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRELAUNCH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRELAUNCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRELAUNCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRELAUNCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRELAUNCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRELAUNCH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRELAUNCH_REDIS_ADDR"`
	Password     string        `envconfig:"PRELAUNCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRELAUNCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRELAUNCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRELAUNCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRELAUNCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRELAUNCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRELAUNCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PRELAUNCH_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PRELAUNCH_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PRELAUNCH_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"PRELAUNCH_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PRELAUNCH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PRELAUNCH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PRELAUNCH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PRELAUNCH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PRELAUNCH_ARGON_KEY_LEN" default:"32"`
	TempPasswordLen  int `envconfig:"PRELAUNCH_TEMP_PASSWORD_LEN" default:"12"`
}

type AuthRateLimitConfig struct {
	LoginWindow       time.Duration `envconfig:"PRELAUNCH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit   int           `envconfig:"PRELAUNCH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit      int           `envconfig:"PRELAUNCH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	EnrollWindow      time.Duration `envconfig:"PRELAUNCH_AUTH_RATE_LIMIT_ENROLL_WINDOW" default:"5m"`
	EnrollEmailLimit  int           `envconfig:"PRELAUNCH_AUTH_RATE_LIMIT_ENROLL_EMAIL_LIMIT" default:"3"`
	EnrollIPLimit     int           `envconfig:"PRELAUNCH_AUTH_RATE_LIMIT_ENROLL_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PRELAUNCH_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"PRELAUNCH_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"PRELAUNCH_SQLITE_PATH" default:"prelaunch.db"`
	AutoMigrate bool   `envconfig:"PRELAUNCH_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
