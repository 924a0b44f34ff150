package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig        `mapstructure:"app"`
	Server    ServerConfig     `mapstructure:"server"`
	Log       LogConfig        `mapstructure:"log"`
	DB        DBConfig         `mapstructure:"db"`
	Cron      CronConfig       `mapstructure:"cron"`
	Zendesk   ZendeskConfig    `mapstructure:"zendesk"`
	DeltaSync DeltaSyncConfig  `mapstructure:"delta_sync"`
	Instances []InstanceConfig `mapstructure:"instances"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DeltaSync string `mapstructure:"delta_sync"`
	StaffSync string `mapstructure:"staff_sync"`
}

type ZendeskConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

type DeltaSyncConfig struct {
	MaxPages       int           `mapstructure:"max_pages"`
	FallbackWindow time.Duration `mapstructure:"fallback_window"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	TicketRowCap   int           `mapstructure:"ticket_row_cap"`
}

// InstanceConfig describes one helpdesk instance the cron syncs on its own.
// Callers hitting the sync API directly do not need an entry here.
type InstanceConfig struct {
	ID     string `mapstructure:"id"`
	Domain string `mapstructure:"domain"`
	Email  string `mapstructure:"email"`
	Token  string `mapstructure:"token"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.delta_sync", "@every 10m")
	v.SetDefault("cron.staff_sync", "@every 6h")
	v.SetDefault("zendesk.timeout", "30s")
	v.SetDefault("zendesk.page_size", 1000)
	v.SetDefault("delta_sync.max_pages", 10)
	// 60 days, the dashboard's default lookback for a first sync.
	v.SetDefault("delta_sync.fallback_window", "1440h")
	// Incremental export is rate limited to 10 req/min; cache results briefly.
	v.SetDefault("delta_sync.cache_ttl", "2m")
	v.SetDefault("delta_sync.ticket_row_cap", 3000)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
