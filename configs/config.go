package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Conf 全局配置，InitConfig 之后可用
var Conf *Config

type Config struct {
	App    App    `mapstructure:"app"`
	Log    Log    `mapstructure:"log"`
	MySQL  MySQL  `mapstructure:"mysql"`
	Redis  Redis  `mapstructure:"redis"`
	JWT    JWT    `mapstructure:"jwt"`
	Email  Email  `mapstructure:"email"`
	Judge  Judge  `mapstructure:"judge"`
	Engine Engine `mapstructure:"engine"`
}

type App struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type Log struct {
	Level    string `mapstructure:"level"`
	Path     string `mapstructure:"path"`
	MaxSize  int    `mapstructure:"max_size"`
	MaxAge   int    `mapstructure:"max_age"`
	Console  bool   `mapstructure:"console"`
}

type MySQL struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

func (m MySQL) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.Database)
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWT struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type Email struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	UserName string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Judge struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxSubmissions int    `mapstructure:"max_submissions"`
}

func (j Judge) Timeout() time.Duration {
	if j.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(j.TimeoutSeconds) * time.Second
}

type Engine struct {
	MatchmakeIntervalSeconds int    `mapstructure:"matchmake_interval_seconds"`
	PollIntervalSeconds      int    `mapstructure:"poll_interval_seconds"`
	CatalogRefreshHours      int    `mapstructure:"catalog_refresh_hours"`
	GraceSeconds             int    `mapstructure:"grace_seconds"`
	RatingPolicy             string `mapstructure:"rating_policy"` // fixed | provisional
}

func (e Engine) MatchmakeInterval() time.Duration {
	if e.MatchmakeIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(e.MatchmakeIntervalSeconds) * time.Second
}

func (e Engine) PollInterval() time.Duration {
	if e.PollIntervalSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(e.PollIntervalSeconds) * time.Second
}

func (e Engine) CatalogRefreshInterval() time.Duration {
	if e.CatalogRefreshHours <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(e.CatalogRefreshHours) * time.Hour
}

func (e Engine) Grace() time.Duration {
	if e.GraceSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.GraceSeconds) * time.Second
}

// Load 从指定路径读取 yaml 配置
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	Conf = config
	return config, nil
}
