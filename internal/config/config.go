package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Analysis AnalysisConfig
	Export   ExportConfig
	AWS      AWSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// UpstreamConfig holds the scan service client configuration
type UpstreamConfig struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	FetchLimit int
}

// AnalysisConfig holds the band plan and classifier defaults
type AnalysisConfig struct {
	DefaultThreshold float64
	BandStartMHz     float64
	BandEndMHz       float64
	ChannelWidthMHz  float64
	BaseChannel      int
	BarCount         int
	RecommendLimit   int
}

// ExportConfig selects where exported artifacts are written
type ExportConfig struct {
	Driver string
	Dir    string
}

// AWSConfig holds AWS/S3 configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// Export drivers
const (
	ExportDriverLocal = "local"
	ExportDriverS3    = "s3"
)

var keys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "ALLOWED_ORIGINS",
	"UPSTREAM_API_URL", "UPSTREAM_TIMEOUT", "UPSTREAM_RETRIES", "SCAN_FETCH_LIMIT",
	"DEFAULT_THRESHOLD", "BAND_START_MHZ", "BAND_END_MHZ", "CHANNEL_WIDTH_MHZ",
	"BASE_CHANNEL", "BAR_COUNT", "RECOMMEND_LIMIT",
	"EXPORT_DRIVER", "EXPORT_DIR",
	"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_ENDPOINT",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("UPSTREAM_API_URL", "https://rf-explorer-api.onrender.com")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")
	v.SetDefault("UPSTREAM_RETRIES", 3)
	v.SetDefault("SCAN_FETCH_LIMIT", 100)
	v.SetDefault("DEFAULT_THRESHOLD", occupancy.DefaultThreshold)
	v.SetDefault("BAND_START_MHZ", occupancy.DefaultBandPlan.BandStart)
	v.SetDefault("BAND_END_MHZ", 790.0)
	v.SetDefault("CHANNEL_WIDTH_MHZ", occupancy.DefaultBandPlan.ChannelWidth)
	v.SetDefault("BASE_CHANNEL", occupancy.DefaultBandPlan.BaseChannel)
	v.SetDefault("BAR_COUNT", 20)
	v.SetDefault("RECOMMEND_LIMIT", occupancy.DefaultRecommendLimit)
	v.SetDefault("EXPORT_DRIVER", ExportDriverLocal)
	v.SetDefault("EXPORT_DIR", "exports")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")

	// Environment variables override .env file values
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// Read .env file (ignore error if file doesn't exist)
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = env
	config.Server.LogLevel = v.GetString("LOG_LEVEL")
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.Upstream.BaseURL = v.GetString("UPSTREAM_API_URL")
	config.Upstream.Timeout = v.GetDuration("UPSTREAM_TIMEOUT")
	config.Upstream.Retries = v.GetInt("UPSTREAM_RETRIES")
	config.Upstream.FetchLimit = v.GetInt("SCAN_FETCH_LIMIT")
	config.Analysis.DefaultThreshold = v.GetFloat64("DEFAULT_THRESHOLD")
	config.Analysis.BandStartMHz = v.GetFloat64("BAND_START_MHZ")
	config.Analysis.BandEndMHz = v.GetFloat64("BAND_END_MHZ")
	config.Analysis.ChannelWidthMHz = v.GetFloat64("CHANNEL_WIDTH_MHZ")
	config.Analysis.BaseChannel = v.GetInt("BASE_CHANNEL")
	config.Analysis.BarCount = v.GetInt("BAR_COUNT")
	config.Analysis.RecommendLimit = v.GetInt("RECOMMEND_LIMIT")
	config.Export.Driver = strings.ToLower(v.GetString("EXPORT_DRIVER"))
	config.Export.Dir = v.GetString("EXPORT_DIR")
	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("env", config.Server.Env).
		Str("upstream", config.Upstream.BaseURL).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Str("export_driver", config.Export.Driver).
		Msg("Configuration loaded")

	return &config, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_API_URL is required")
	}
	if c.Upstream.Retries < 0 {
		return fmt.Errorf("UPSTREAM_RETRIES must not be negative, got %d", c.Upstream.Retries)
	}
	if c.Upstream.FetchLimit <= 0 {
		return fmt.Errorf("SCAN_FETCH_LIMIT must be positive, got %d", c.Upstream.FetchLimit)
	}
	a := c.Analysis
	if a.ChannelWidthMHz <= 0 {
		return fmt.Errorf("CHANNEL_WIDTH_MHZ must be positive, got %g", a.ChannelWidthMHz)
	}
	if a.BandEndMHz <= a.BandStartMHz {
		return fmt.Errorf("BAND_END_MHZ (%g) must be above BAND_START_MHZ (%g)", a.BandEndMHz, a.BandStartMHz)
	}
	if a.DefaultThreshold < occupancy.MinThreshold || a.DefaultThreshold > occupancy.MaxThreshold {
		return fmt.Errorf("DEFAULT_THRESHOLD must be within [%g, %g], got %g",
			occupancy.MinThreshold, occupancy.MaxThreshold, a.DefaultThreshold)
	}
	if a.BarCount <= 0 {
		return fmt.Errorf("BAR_COUNT must be positive, got %d", a.BarCount)
	}
	if a.RecommendLimit <= 0 {
		return fmt.Errorf("RECOMMEND_LIMIT must be positive, got %d", a.RecommendLimit)
	}
	switch c.Export.Driver {
	case ExportDriverLocal:
		if c.Export.Dir == "" {
			return fmt.Errorf("EXPORT_DIR is required for the local export driver")
		}
	case ExportDriverS3:
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 export driver")
		}
	default:
		return fmt.Errorf("unsupported EXPORT_DRIVER: %s", c.Export.Driver)
	}
	return nil
}

// BandPlan returns the channel plan described by the analysis settings
func (c *Config) BandPlan() occupancy.BandPlan {
	return occupancy.BandPlan{
		BandStart:    c.Analysis.BandStartMHz,
		ChannelWidth: c.Analysis.ChannelWidthMHz,
		BaseChannel:  c.Analysis.BaseChannel,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
