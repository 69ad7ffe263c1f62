package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Data source drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Standings StandingsConfig `mapstructure:"standings"`
}

type DataConfig struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
	DSN    string `mapstructure:"dsn"`
}

type HTTPConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type StandingsConfig struct {
	HeadToHead bool `mapstructure:"head_to_head"`
}

// New returns a viper instance with defaults, the LEAGUE_ env prefix and
// the standard search paths.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data.driver", DriverFile)
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.dsn", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("standings.head_to_head", false)

	v.SetConfigName("league")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("LEAGUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if any) and decodes it. A missing file is
// not an error; defaults and environment still apply.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the data source settings.
func (c *Config) Validate() error {
	switch c.Data.Driver {
	case DriverFile:
		if c.Data.Dir == "" {
			return errors.New("config: data.dir is required for the file driver")
		}
	case DriverSQLite, DriverPostgres:
		if c.Data.DSN == "" {
			return fmt.Errorf("config: data.dsn is required for the %s driver", c.Data.Driver)
		}
	default:
		return fmt.Errorf("config: unknown data.driver %q (valid: file, sqlite, postgres)", c.Data.Driver)
	}
	return nil
}
