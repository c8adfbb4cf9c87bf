package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool

	File       string // 留空则只打 stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Backend 远端 REST 服务；所有业务数据都在那边
type Backend struct {
	BaseURL      string `mapstructure:"base_url"`
	AssetBaseURL string `mapstructure:"asset_base_url"` // 浏览器取商品图用，留空同 base_url
	TimeoutSec   int    `mapstructure:"timeout_sec"`
}

type Session struct {
	Secret     string
	Issuer     string
	TTLMin     int    `mapstructure:"ttl_min"`
	CookieName string `mapstructure:"cookie_name"`
	Secure     bool
}

type Redis struct {
	Addr     string `mapstructure:"addr"` // 留空降级到内存会话
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Stats struct {
	CacheTTLSec int `mapstructure:"cache_ttl_sec"` // 0 = 不缓存
}

type CORS struct {
	Origins []string
}

type Limits struct {
	RPS           float64 `mapstructure:"rps"`
	Burst         int     `mapstructure:"burst"`
	MaxConcurrent int64   `mapstructure:"max_concurrent"`
	MaxBodyMB     int64   `mapstructure:"max_body_mb"`
	TimeoutSec    int     `mapstructure:"timeout_sec"`
	LoginRPS      float64 `mapstructure:"login_rps"`
	LoginBurst    int     `mapstructure:"login_burst"`
}

type Config struct {
	App     App
	Log     Log
	Backend Backend
	Session Session
	Redis   Redis
	Stats   Stats
	CORS    CORS `mapstructure:"cors"`
	Limits  Limits
}

func Load(path string) *Config {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// 默认路径读不到可以只靠默认值 + 环境变量跑起来
		if explicit {
			log.Fatalf("read config: %v", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.Backend.AssetBaseURL == "" {
		c.Backend.AssetBaseURL = c.Backend.BaseURL
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "admin-dashboard")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 15)
	v.SetDefault("app.http.writetimeoutsec", 30)
	v.SetDefault("app.http.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("backend.base_url", "http://127.0.0.1:3000")
	v.SetDefault("backend.timeout_sec", 15)

	v.SetDefault("session.issuer", "admin-dashboard")
	v.SetDefault("session.ttl_min", 720)
	v.SetDefault("session.cookie_name", "admin_session")
	v.SetDefault("session.secure", false)

	v.SetDefault("stats.cache_ttl_sec", 15)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.max_concurrent", 300)
	v.SetDefault("limits.max_body_mb", 16)
	v.SetDefault("limits.timeout_sec", 20)
	v.SetDefault("limits.login_rps", 1)
	v.SetDefault("limits.login_burst", 5)
}
