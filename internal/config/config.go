package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Source  SourceConfig  `yaml:"source"`
	Render  RenderConfig  `yaml:"render"`
	Lookup  LookupConfig  `yaml:"lookup"`
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
}

// LogConfig holds logging settings. The CLI logs to stderr, so the default
// level stays quiet.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WUDAO_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"WUDAO_LOG_FORMAT" env-default:"text"`
}

// Source modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeAuto    = "auto"
)

// SourceConfig selects where raw entries come from.
type SourceConfig struct {
	Mode      string        `yaml:"mode"       env:"WUDAO_SOURCE_MODE"  env-default:"auto"`
	LocalPath string        `yaml:"local_path" env:"WUDAO_LOCAL_DICT"`
	BaseURL   string        `yaml:"base_url"   env:"WUDAO_YOUDAO_URL"   env-default:"https://dict.youdao.com"`
	Timeout   time.Duration `yaml:"timeout"    env:"WUDAO_HTTP_TIMEOUT" env-default:"10s"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Short  bool   `yaml:"short"  env:"WUDAO_SHORT"  env-default:"false"`
	Format string `yaml:"format" env:"WUDAO_FORMAT" env-default:"terminal"`
	Color  string `yaml:"color"  env:"WUDAO_COLOR"  env-default:"auto"`
}

// LookupConfig bounds a multi-word lookup.
type LookupConfig struct {
	MaxParallel int           `yaml:"max_parallel" env:"WUDAO_MAX_PARALLEL"   env-default:"4"`
	Timeout     time.Duration `yaml:"timeout"      env:"WUDAO_LOOKUP_TIMEOUT" env-default:"30s"`
}

// HistoryConfig holds the optional PostgreSQL lookup history. History is
// disabled when DSN is empty.
type HistoryConfig struct {
	DSN             string        `yaml:"dsn"                env:"WUDAO_HISTORY_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"WUDAO_HISTORY_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"WUDAO_HISTORY_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"WUDAO_HISTORY_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"WUDAO_HISTORY_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ListLimit       int           `yaml:"list_limit"         env:"WUDAO_HISTORY_LIST_LIMIT"         env-default:"20"`
}

// Enabled reports whether lookups should be recorded.
func (h HistoryConfig) Enabled() bool {
	return h.DSN != ""
}

// ServerConfig holds HTTP server settings for wd-server.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"WUDAO_SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"WUDAO_SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"WUDAO_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"WUDAO_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"WUDAO_SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"WUDAO_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}
