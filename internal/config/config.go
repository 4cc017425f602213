// Package config loads settings from defaults, an optional YAML file, a .env
// file and STUDYFORTRESS_* environment variables, in increasing precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "STUDYFORTRESS"

type Config struct {
	Addr             string        `mapstructure:"addr"`
	Mode             string        `mapstructure:"mode"`
	BaseURL          string        `mapstructure:"baseURL"`
	SessionSecret    string        `mapstructure:"sessionSecret"`
	SessionTTL       time.Duration `mapstructure:"sessionTTL"`
	LoginDelay       time.Duration `mapstructure:"loginDelay"`
	OrganizeDelay    time.Duration `mapstructure:"organizeDelay"`
	TranscribeDelay  time.Duration `mapstructure:"transcribeDelay"`
	PlaybackDuration time.Duration `mapstructure:"playbackDuration"`
	MaxUploadBytes   int64         `mapstructure:"maxUploadBytes"`
	CatalogPath      string        `mapstructure:"catalogPath"`
}

// Prod reports whether the server runs in production mode.
func (c *Config) Prod() bool {
	m := strings.ToLower(c.Mode)
	return m == "prod" || m == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("mode", "dev")
	v.SetDefault("baseURL", "")
	v.SetDefault("sessionSecret", "dev-only-secret-change-me")
	v.SetDefault("sessionTTL", 24*time.Hour)
	v.SetDefault("loginDelay", 1500*time.Millisecond)
	v.SetDefault("organizeDelay", 2*time.Second)
	v.SetDefault("transcribeDelay", 2*time.Second)
	v.SetDefault("playbackDuration", 2*time.Second)
	v.SetDefault("maxUploadBytes", 20<<20)
	v.SetDefault("catalogPath", "")
}

// Load reads configuration. file may be empty; dotenv files that do not
// exist are skipped.
func Load(file string, dotenv ...string) (*Config, error) {
	if err := loadDotEnv(dotenv...); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "config: stat %s", p)
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "config: load %s", p)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: sessionTTL must be positive")
	}
	if c.Prod() && c.SessionSecret == "dev-only-secret-change-me" {
		return errors.New("config: sessionSecret must be set in prod mode")
	}
	for name, d := range map[string]time.Duration{
		"loginDelay":       c.LoginDelay,
		"organizeDelay":    c.OrganizeDelay,
		"transcribeDelay":  c.TranscribeDelay,
		"playbackDuration": c.PlaybackDuration,
	} {
		if d < 0 {
			return errors.Errorf("config: %s must not be negative", name)
		}
	}
	return nil
}
