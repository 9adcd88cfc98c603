package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// ImportConfig points at the well-known set menu JSON document.
// Schedule is an optional cron expression for recurring re-imports.
type ImportConfig struct {
	Path     string `yaml:"path" json:"path"`
	Schedule string `yaml:"schedule" json:"schedule"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Import   ImportConfig `yaml:"import" json:"import"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "feastlane",
		Location: "Europe/London",
		Workdir:  "/var/feastlane",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8090,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "feastlane",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  50,
		IdleConn: 10,
		Debug:    false,
	},
	Import: ImportConfig{
		Path:     "/var/feastlane/data/set-menus.json",
		Schedule: "",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/feastlane/feastlane.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// FEASTLANE_* environment overrides on top. A missing file is not an
// error; defaults apply.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("FEASTLANE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("FEASTLANE_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("FEASTLANE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("FEASTLANE_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("FEASTLANE_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("FEASTLANE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("FEASTLANE_DB_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("FEASTLANE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("FEASTLANE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("FEASTLANE_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("FEASTLANE_IMPORT_PATH", func(v string) { cfg.Import.Path = v })
	setEnvValue("FEASTLANE_IMPORT_SCHEDULE", func(v string) { cfg.Import.Schedule = v })
	setEnvValue("FEASTLANE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}
