package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PASSPORT_PROFILE_HOME_LAT.
const EnvPrefix = "PASSPORT"

// Config holds all application configuration.
type Config struct {
	Profile struct {
		Name        string  `yaml:"name"`
		Email       string  `yaml:"email" validate:"omitempty,email"`
		Postcode    string  `yaml:"postcode"`
		Handicap    int     `yaml:"handicap" validate:"gte=0,lte=54"`
		HomeLat     float64 `yaml:"home_lat" split_words:"true" validate:"gte=-90,lte=90"`
		HomeLon     float64 `yaml:"home_lon" split_words:"true" validate:"gte=-180,lte=180"`
		RadiusMiles float64 `yaml:"radius_miles" split_words:"true" validate:"gte=0"`
	} `yaml:"profile"`
	Membership struct {
		PackageID string `yaml:"package_id" split_words:"true" validate:"required"`
	} `yaml:"membership"`
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables history recording
	} `yaml:"database"`
	Log struct {
		Level   string `yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
		Console bool   `yaml:"console"`
	} `yaml:"log"`
}

// Default returns the built-in settings: a Leeds home point, 20 mile radius
// and the Core package.
func Default() *Config {
	cfg := &Config{}
	cfg.Profile.Postcode = "LS1 1AA"
	cfg.Profile.Handicap = 18
	cfg.Profile.HomeLat = 53.8008
	cfg.Profile.HomeLon = -1.5491
	cfg.Profile.RadiusMiles = 20
	cfg.Membership.PackageID = "core"
	cfg.Database.SQLitePath = "data/passport.db"
	cfg.Log.Level = "info"
	return cfg
}

// Load starts from Default, overlays the YAML file at path, then applies
// environment variable overrides (PASSPORT_<SECTION>_<FIELD>). A missing
// file is not an error. Keys absent from the file and unset variables keep
// their default.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and required settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
