package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug|info|warn|error
	Format string `mapstructure:"format"` // text|json
}

type Config struct {
	Addr      string    `mapstructure:"addr"`
	DataDir   string    `mapstructure:"data_dir"`
	ImagesDir string    `mapstructure:"images_dir"`
	Storage   string    `mapstructure:"storage"`    // "csv" | "sqlite"
	WeekStart string    `mapstructure:"week_start"` // nombre del día, p.ej. "sunday"
	Log       LogConfig `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		DataDir:   "data",
		ImagesDir: "images",
		Storage:   "csv",
		WeekStart: "sunday",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load arma la config con defaults + config.yaml (si existe en el cwd)
// + overrides por env con prefijo PETDIARY_ (p.ej. PETDIARY_ADDR=:9000).
func Load() (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("images_dir", cfg.ImagesDir)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("week_start", cfg.WeekStart)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	v.SetEnvPrefix("PETDIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config.yaml es opcional; solo un archivo presente pero roto es error
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config read: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage != "csv" && cfg.Storage != "sqlite" {
		return cfg, fmt.Errorf("config: unknown storage backend %q", cfg.Storage)
	}

	return cfg, nil
}

// WeekStartDay traduce week_start a time.Weekday. Valores desconocidos
// caen en domingo, el arranque de semana del calendario original.
func (c Config) WeekStartDay() time.Weekday {
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "monday", "mon":
		return time.Monday
	case "tuesday", "tue":
		return time.Tuesday
	case "wednesday", "wed":
		return time.Wednesday
	case "thursday", "thu":
		return time.Thursday
	case "friday", "fri":
		return time.Friday
	case "saturday", "sat":
		return time.Saturday
	default:
		return time.Sunday
	}
}
