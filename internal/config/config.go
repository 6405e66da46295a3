package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/reqpeek/reqpeek/internal/logger"
	"github.com/reqpeek/reqpeek/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// ListenAddr is the address the capturing proxy listens on.
	ListenAddr string `mapstructure:"listen_addr"`
	// TargetURL is the URL proxied requests are forwarded to.
	// It is supplied as a command-line argument, not read from the file.
	TargetURL string
	// ViewerAddr is the address the web view listens on.
	ViewerAddr string `mapstructure:"viewer_addr"`
	// MaxBodyCapture is the maximum request body size to capture (e.g., "64KB", "1MB").
	MaxBodyCapture string `mapstructure:"max_body_capture"`
	// RequestTimeout is the timeout for requests issued by the send command (e.g., "30s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// Color indicates whether terminal output is syntax-highlighted.
	Color bool `mapstructure:"color"`
	// ParsedTargetURL is the parsed target URL (nil when no target was supplied).
	ParsedTargetURL *url.URL
	// ParsedMaxBodyCapture is the parsed body capture limit in bytes.
	ParsedMaxBodyCapture int64
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".reqpeek.yaml"

	// DefaultListenAddr is the default address for the capturing proxy.
	DefaultListenAddr = "127.0.0.1:8080"

	// DefaultViewerAddr is the default address for the web view.
	DefaultViewerAddr = "127.0.0.1:4040"

	// DefaultMaxBodyCapture is the default limit for captured request bodies.
	DefaultMaxBodyCapture = "64KB"

	// DefaultRequestTimeout is the default timeout for requests issued by the send command.
	DefaultRequestTimeout = "60s"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyListenAddr indicates that the proxy listen address is missing.
	ErrEmptyListenAddr = errors.New("listen address cannot be empty")
	// ErrEmptyViewerAddr indicates that the viewer listen address is missing.
	ErrEmptyViewerAddr = errors.New("viewer address cannot be empty")
	// ErrInvalidTargetURL indicates that the target URL is not an absolute http(s) URL.
	ErrInvalidTargetURL = errors.New("target must be an absolute http or https URL")
	// ErrInvalidMaxBodyCapture indicates that the body capture limit is invalid.
	ErrInvalidMaxBodyCapture = errors.New("max_body_capture must be positive")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// LoadConfig loads configuration settings from a YAML file.
// A missing file is not an error: every setting has a default,
// so the tool works without any configuration on disk.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	viper.SetConfigType("yaml")

	viper.SetDefault("listen_addr", DefaultListenAddr)
	viper.SetDefault("viewer_addr", DefaultViewerAddr)
	viper.SetDefault("max_body_capture", DefaultMaxBodyCapture)
	viper.SetDefault("request_timeout", DefaultRequestTimeout)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("color", true)

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	var err error

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return ErrEmptyListenAddr
	}

	if strings.TrimSpace(cfg.ViewerAddr) == "" {
		return ErrEmptyViewerAddr
	}

	// The target is set only in proxy mode; the send command has none.
	if targetURL := strings.TrimSpace(cfg.TargetURL); targetURL != "" {
		cfg.ParsedTargetURL, err = url.Parse(targetURL)
		if err != nil {
			return fmt.Errorf("failed to parse target URL: %w", err)
		}

		if !cfg.ParsedTargetURL.IsAbs() ||
			(cfg.ParsedTargetURL.Scheme != "http" && cfg.ParsedTargetURL.Scheme != "https") {
			return fmt.Errorf("%w: '%s'", ErrInvalidTargetURL, cfg.TargetURL)
		}
	}

	maxBodyCapture := strings.TrimSpace(cfg.MaxBodyCapture)
	if maxBodyCapture == "" {
		maxBodyCapture = DefaultMaxBodyCapture
	}

	parsedMaxBodyCapture, err := humanize.ParseBytes(maxBodyCapture)
	if err != nil {
		return fmt.Errorf("failed to parse max body capture size: %w", err)
	}

	if parsedMaxBodyCapture == 0 {
		return ErrInvalidMaxBodyCapture
	}

	// io.LimitReader accepts only int64 so we transform it safely in order to use it later.
	cfg.ParsedMaxBodyCapture = utils.SafeUint64ToInt64(parsedMaxBodyCapture)

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	return nil
}
