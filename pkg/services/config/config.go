package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/trade-radar/pkg/loader/warehouse"
	"github.com/de-tools/trade-radar/pkg/models/api"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "RADAR"

type Config struct {
	Log        LogConfig                    `mapstructure:"log"`
	Store      StoreConfig                  `mapstructure:"store"`
	Server     ServerConfig                 `mapstructure:"server"`
	Analysis   AnalysisConfig               `mapstructure:"analysis"`
	Presets    string                       `mapstructure:"presets"`
	AWS        AWSConfig                    `mapstructure:"aws"`
	Snowflake  warehouse.SnowflakeSettings  `mapstructure:"snowflake"`
	Databricks warehouse.DatabricksSettings `mapstructure:"databricks"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type StoreConfig struct {
	Driver  string `mapstructure:"driver" validate:"oneof=duckdb sqlite"`
	Path    string `mapstructure:"path" validate:"required"`
	Threads int    `mapstructure:"threads" validate:"gte=0"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb" validate:"gt=0"`
}

// AnalysisConfig holds the defaults applied when a request leaves a field empty.
type AnalysisConfig struct {
	Policy        string `mapstructure:"policy" validate:"required"`
	ReferenceMode string `mapstructure:"reference_mode" validate:"oneof=latest today"`
	Direction     string `mapstructure:"direction" validate:"oneof=importer exporter"`
	TopN          int    `mapstructure:"top_n" validate:"gt=0"`
}

type AWSConfig struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("store.driver", "duckdb")
	v.SetDefault("store.path", "trade-radar.db")
	v.SetDefault("store.threads", 4)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_mb", 64)
	v.SetDefault("analysis.policy", "year")
	v.SetDefault("analysis.reference_mode", "latest")
	v.SetDefault("analysis.direction", "importer")
	v.SetDefault("analysis.top_n", 10)
	v.SetDefault("presets", "presets.ini")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "")
}

// LoadConfig reads the YAML file at path (optional) and applies RADAR_* environment
// overrides, e.g. RADAR_STORE_DRIVER=sqlite.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Apply fills the fields req leaves empty with the configured defaults.
func (c AnalysisConfig) Apply(req api.AnalysisRequest) api.AnalysisRequest {
	if req.Period.Policy == "" {
		req.Period.Policy = c.Policy
	}
	if req.ReferenceMode == "" && req.ReferenceDate == "" {
		req.ReferenceMode = c.ReferenceMode
	}
	if req.Direction == "" {
		req.Direction = c.Direction
	}
	if req.TopN == 0 {
		req.TopN = c.TopN
	}
	return req
}
