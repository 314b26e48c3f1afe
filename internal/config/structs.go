package config

// Config represents the complete configuration for the gs1scan application.
// It covers all commands (decode, catalogue, serve) and supports loading
// from configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	CataloguePath string `mapstructure:"catalogue_path" yaml:"catalogue_path" json:"catalogue_path"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose       bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Decoding configuration
	Decode DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// DecodeConfig contains barcode decoding settings.
type DecodeConfig struct {
	// FNC1Prefix is the symbology identifier expected at the start of
	// every GS1 payload.
	FNC1Prefix string `mapstructure:"fnc1_prefix" yaml:"fnc1_prefix" json:"fnc1_prefix"`

	// Separator is the group separator terminating variable-length values.
	Separator string `mapstructure:"separator" yaml:"separator" json:"separator"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxBatchSize    int    `mapstructure:"max_batch_size" yaml:"max_batch_size" json:"max_batch_size"`

	// Rate limiting
	RateLimitEnabled  bool  `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled" json:"rate_limit_enabled"`
	RequestsPerMinute int   `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	RequestsPerHour   int   `mapstructure:"requests_per_hour" yaml:"requests_per_hour" json:"requests_per_hour"`
	MaxRequestsPerDay int   `mapstructure:"max_requests_per_day" yaml:"max_requests_per_day" json:"max_requests_per_day"`
	MaxDataPerDay     int64 `mapstructure:"max_data_per_day" yaml:"max_data_per_day" json:"max_data_per_day"`
}
