package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Feed holds the upstream WFS feed configuration.
	Feed FeedConfig `mapstructure:",squash"`

	// Snapshot holds the local observation snapshot configuration.
	Snapshot SnapshotConfig `mapstructure:",squash"`

	// Cache holds the Redis cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Voyage holds the voyage detection parameters.
	Voyage VoyageConfig `mapstructure:",squash"`
}

// FeedConfig holds the GeoServer WFS endpoint details.
type FeedConfig struct {
	// BaseURL is the WFS endpoint serving the underway feed.
	BaseURL string `mapstructure:"WFS_BASE_URL" default:"https://data.aad.gov.au/geoserver/underway/ows"`
	// TypeName is the WFS feature type to query.
	TypeName string `mapstructure:"WFS_TYPE_NAME" default:"underway:nuyina_underway"`
	// TimeoutSeconds bounds a single feed request.
	TimeoutSeconds int `mapstructure:"WFS_TIMEOUT_SECONDS" default:"60"`
	// PageSize caps features per request. 0 fetches everything in one call.
	PageSize int `mapstructure:"WFS_PAGE_SIZE" default:"0"`
	// RefreshIntervalMinutes is the scheduler period. 0 disables background refresh.
	RefreshIntervalMinutes int `mapstructure:"REFRESH_INTERVAL_MINUTES" default:"360"`
}

// SnapshotConfig holds local snapshot storage details.
type SnapshotConfig struct {
	// DBPath is the sqlite database file holding the observation snapshot.
	DBPath string `mapstructure:"SNAPSHOT_DB_PATH" default:"./data/underway.db"`
	// Cutoff excludes observations before this date (YYYY-MM-DD) from detection.
	Cutoff string `mapstructure:"OBSERVATION_CUTOFF" default:"2020-01-01"`
}

// CacheConfig holds Redis connection and draft caching details.
type CacheConfig struct {
	// RedisURL is the Redis connection string.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// DraftTTLMinutes is how long a computed voyage draft stays cached.
	DraftTTLMinutes int `mapstructure:"DRAFT_CACHE_TTL_MINUTES" default:"15"`
}

// VoyageConfig holds the detection tuning parameters.
type VoyageConfig struct {
	// HomePort is the port whose arrivals close a voyage.
	HomePort string `mapstructure:"VOYAGE_HOME_PORT" default:"Hobart"`
	// MinDwellHours is the minimum time in a port radius to count as a visit.
	MinDwellHours float64 `mapstructure:"VOYAGE_MIN_DWELL_HOURS" default:"2"`
	// PortsFile optionally points to a JSON port catalog replacing the built-in one.
	PortsFile string `mapstructure:"PORTS_FILE" default:""`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
