package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageBackendYAML  = "yaml"
	StorageBackendMySQL = "mysql"
)

type Config struct {
	User       string           `mapstructure:"user" validate:"required,excludesall=/\\"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Books      BooksConfig      `mapstructure:"books"`
	Comparison ComparisonConfig `mapstructure:"comparison"`
	Record     RecordConfig     `mapstructure:"record"`
	Report     ReportConfig     `mapstructure:"report"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
	Log        LogConfig        `mapstructure:"log"`
}

type StorageConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=yaml mysql"`
	Directory string `mapstructure:"directory" validate:"required"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	// PingAttempts is how many more times a failed ping is retried before giving up
	PingAttempts uint `mapstructure:"ping_attempts"`
}

type BooksConfig struct {
	// AverageLength is the number of pages counted as one book
	AverageLength int `mapstructure:"average_length" validate:"gt=0"`
}

type ComparisonConfig struct {
	// SourceURL points to a YAML list of populations. It takes precedence over Populations.
	SourceURL     string             `mapstructure:"source_url" validate:"omitempty,url"`
	RetryAttempts uint               `mapstructure:"retry_attempts"`
	Populations   []PopulationConfig `mapstructure:"populations" validate:"unique=Label,dive"`
}

type PopulationConfig struct {
	Label        string  `mapstructure:"label" validate:"required"`
	BooksPerYear float64 `mapstructure:"books_per_year" validate:"gte=0"`
}

type RecordConfig struct {
	DefaultMode string `mapstructure:"default_mode" validate:"oneof=accumulate overwrite"`
}

type ReportConfig struct {
	// ExtraMinutes is used for the "what if you read N more minutes a day" projection
	ExtraMinutes int `mapstructure:"extra_minutes" validate:"gte=0"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
	PDFTheme        string `mapstructure:"pdf_theme" validate:"oneof=light dark"`
}

type LogConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int  `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int  `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool `mapstructure:"compress"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/readtrack")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("user", "default")
	v.SetDefault("storage.backend", StorageBackendYAML)
	v.SetDefault("storage.directory", filepath.Join("data", "reading_logs"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "readtrack")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.ping_attempts", 3)
	v.SetDefault("books.average_length", 300)
	v.SetDefault("comparison.retry_attempts", 3)
	v.SetDefault("record.default_mode", "accumulate")
	v.SetDefault("report.extra_minutes", 15)
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("outputs.pdf_theme", "light")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	if err := v.BindEnv("user", "READTRACK_USER"); err != nil {
		return nil, fmt.Errorf("failed to bind READTRACK_USER environment variable: %w", err)
	}
	if err := v.BindEnv("comparison.source_url", "READTRACK_COMPARISON_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind READTRACK_COMPARISON_URL environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
