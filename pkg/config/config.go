package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Analyzers   AnalyzersConfig   `mapstructure:"analyzers"`
	Fusion      FusionConfig      `mapstructure:"fusion"`
	PreScreen   PreScreenConfig   `mapstructure:"prescreen"`
	Appeals     AppealsConfig     `mapstructure:"appeals"`
	Correlation CorrelationConfig `mapstructure:"correlation"`
	Threat      ThreatConfig      `mapstructure:"threat"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AnalyzersConfig configures the outbound provider calls shared by every
// analyzer adapter.
type AnalyzersConfig struct {
	ProviderBaseURL  string `mapstructure:"provider_base_url"`
	TranscriptionURL string `mapstructure:"transcription_url"`
	APIKey           string `mapstructure:"api_key"`
	CallTimeoutSecs  int    `mapstructure:"call_timeout_seconds"`
	BreakerMaxFails  uint32 `mapstructure:"breaker_max_failures"`
	BreakerResetSecs int    `mapstructure:"breaker_reset_seconds"`
	FrameCadenceSecs int    `mapstructure:"video_frame_cadence_seconds"`
	MaxSampledFrames int    `mapstructure:"video_max_sampled_frames"`
}

// FusionConfig holds the decision thresholds, overridable per tenant.
type FusionConfig struct {
	BlockThreshold  float64                     `mapstructure:"block_threshold"`
	ReviewThreshold float64                     `mapstructure:"review_threshold"`
	TenantOverrides map[string]TenantThresholds `mapstructure:"tenant_overrides"`
}

type TenantThresholds struct {
	BlockThreshold  float64 `mapstructure:"block_threshold"`
	ReviewThreshold float64 `mapstructure:"review_threshold"`
}

type PreScreenConfig struct {
	BaseRisk         float64 `mapstructure:"base_risk"`
	ViolationWeight  float64 `mapstructure:"violation_weight"`
	NewAccountDays   int     `mapstructure:"new_account_days"`
	NewAccountRisk   float64 `mapstructure:"new_account_risk"`
	LargeVideoBytes  int64   `mapstructure:"large_video_bytes"`
	LargeVideoRisk   float64 `mapstructure:"large_video_risk"`
	OffHoursRisk     float64 `mapstructure:"off_hours_risk"`
	NormalHoursStart int     `mapstructure:"normal_hours_start"`
	NormalHoursEnd   int     `mapstructure:"normal_hours_end"`
}

type AppealsConfig struct {
	ConfidenceCutoff  float64 `mapstructure:"confidence_cutoff"`
	OverturnThreshold float64 `mapstructure:"overturn_threshold"`
}

type CorrelationConfig struct {
	CorrelationThreshold float64 `mapstructure:"correlation_threshold"`
	AnomalySigma         float64 `mapstructure:"anomaly_sigma"`
	MinSeriesLength      int     `mapstructure:"min_series_length"`
	BaselineSize         int     `mapstructure:"baseline_size"`
}

type ThreatConfig struct {
	WindowSize     int     `mapstructure:"window_size"`
	SmoothingAlpha float64 `mapstructure:"smoothing_alpha"`
}

type SchedulerConfig struct {
	Width          int `mapstructure:"width"`
	BatchSize      int `mapstructure:"batch_size"`
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

type TelemetryConfig struct {
	Exporter string                 `mapstructure:"exporter"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %v", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}

	a := &globalConfig.Analyzers
	if a.CallTimeoutSecs == 0 {
		a.CallTimeoutSecs = 30
	}
	if a.BreakerMaxFails == 0 {
		a.BreakerMaxFails = 5
	}
	if a.BreakerResetSecs == 0 {
		a.BreakerResetSecs = 60
	}
	if a.FrameCadenceSecs == 0 {
		a.FrameCadenceSecs = 30
	}
	if a.MaxSampledFrames == 0 {
		a.MaxSampledFrames = 10
	}

	f := &globalConfig.Fusion
	if f.BlockThreshold == 0 {
		f.BlockThreshold = 0.7
	}
	if f.ReviewThreshold == 0 {
		f.ReviewThreshold = 0.4
	}

	p := &globalConfig.PreScreen
	if p.BaseRisk == 0 {
		p.BaseRisk = 0.1
	}
	if p.ViolationWeight == 0 {
		p.ViolationWeight = 0.15
	}
	if p.NewAccountDays == 0 {
		p.NewAccountDays = 30
	}
	if p.NewAccountRisk == 0 {
		p.NewAccountRisk = 0.1
	}
	if p.LargeVideoBytes == 0 {
		p.LargeVideoBytes = 500 << 20
	}
	if p.LargeVideoRisk == 0 {
		p.LargeVideoRisk = 0.05
	}
	if p.OffHoursRisk == 0 {
		p.OffHoursRisk = 0.03
	}
	if p.NormalHoursStart == 0 {
		p.NormalHoursStart = 6
	}
	if p.NormalHoursEnd == 0 {
		p.NormalHoursEnd = 23
	}

	ap := &globalConfig.Appeals
	if ap.ConfidenceCutoff == 0 {
		ap.ConfidenceCutoff = 0.8
	}
	if ap.OverturnThreshold == 0 {
		ap.OverturnThreshold = 0.3
	}

	c := &globalConfig.Correlation
	if c.CorrelationThreshold == 0 {
		c.CorrelationThreshold = 0.75
	}
	if c.AnomalySigma == 0 {
		c.AnomalySigma = 3.0
	}
	if c.MinSeriesLength == 0 {
		c.MinSeriesLength = 5
	}
	if c.BaselineSize == 0 {
		c.BaselineSize = 50
	}

	t := &globalConfig.Threat
	if t.WindowSize == 0 {
		t.WindowSize = 100
	}
	if t.SmoothingAlpha == 0 {
		t.SmoothingAlpha = 0.2
	}

	s := &globalConfig.Scheduler
	if s.Width == 0 {
		s.Width = 5
	}
	if s.BatchSize == 0 {
		s.BatchSize = 20
	}
	if s.PollIntervalMs == 0 {
		s.PollIntervalMs = 250
	}
}

// Thresholds resolves the fusion thresholds for a tenant, falling back to the
// global defaults when the tenant carries no override.
func (f FusionConfig) Thresholds(tenantID string) TenantThresholds {
	if o, ok := f.TenantOverrides[tenantID]; ok {
		if o.BlockThreshold == 0 {
			o.BlockThreshold = f.BlockThreshold
		}
		if o.ReviewThreshold == 0 {
			o.ReviewThreshold = f.ReviewThreshold
		}
		return o
	}
	return TenantThresholds{
		BlockThreshold:  f.BlockThreshold,
		ReviewThreshold: f.ReviewThreshold,
	}
}

func GetConfig() *Config {
	return &globalConfig
}
