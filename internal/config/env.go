package config

type DBDriver string

const (
	DriverPostgres DBDriver = "postgres"
	DriverSqlite   DBDriver = "sqlite"
)

type Database struct {
	Driver   DBDriver `mapstructure:"DATABASE_DRIVER" default:"postgres"`
	Host     string   `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int      `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string   `mapstructure:"DATABASE_NAME" default:"labportal"`
	User     string   `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string   `mapstructure:"DATABASE_PASSWORD" default:"labportal"`
	Path     string   `mapstructure:"DATABASE_PATH" default:"./labportal.db"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"labportal"`
	Service  string `mapstructure:"SERVICE" default:"web"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
	Timezone string `mapstructure:"TIMEZONE" default:"UTC"`
}

type Session struct {
	CookieName string `mapstructure:"SESSION_COOKIE_NAME" default:"labportal_session"`
	// TTLHours bounds both the redis key and the cookie max-age.
	TTLHours int  `mapstructure:"SESSION_TTL_HOURS" default:"336"`
	Secure   bool `mapstructure:"SESSION_COOKIE_SECURE" default:"false"`
}

type Auth struct {
	JWTSecret   string `mapstructure:"AUTH_JWT_SECRET" default:"labportal-dev-secret"`
	JWTTTLHours int    `mapstructure:"AUTH_JWT_TTL_HOURS" default:"12"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint string `mapstructure:"TRACE_METRICENDPOINT" default:""`
	Stdout         bool   `mapstructure:"TRACE_STDOUT" default:"false"`
}
