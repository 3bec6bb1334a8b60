package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"clipforge/internal/strategy"
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("clip.count", 3)
	v.SetDefault("clip.length", string(strategy.ClipLengthMedium))
	v.SetDefault("strategy.ai_timeout_seconds", 180)
	v.SetDefault("transcription.timeout_seconds", 300)
	v.SetDefault("video.fallback_duration_seconds", 300)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("output.path", "highlights.json")
	v.SetDefault("debug.mode", false)
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	// Set up environment variable mapping
	v.SetEnvPrefix("CLIPFORGE")
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("clip.count", "CLIP_COUNT")
	v.BindEnv("clip.length", "CLIP_LENGTH")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "OPENAI_MODEL")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("output.path", "OUTPUT_PATH")
	v.BindEnv("debug.mode", "DEBUG_MODE")

	return &Configuration{viper: v}, nil
}

// GetClipCount returns the configured number of clips to generate
func (c *Configuration) GetClipCount() int {
	return c.viper.GetInt("clip.count")
}

// GetClipLength returns the configured clip length preset
func (c *Configuration) GetClipLength() strategy.ClipLength {
	return strategy.ClipLength(c.viper.GetString("clip.length"))
}

// GetGenerationOptions returns the highlight generation options derived from
// the configured clip count and length preset
func (c *Configuration) GetGenerationOptions() strategy.Options {
	return strategy.OptionsForLength(c.GetClipLength(), c.GetClipCount())
}

// GetAITimeout returns the timeout for the external AI analysis call
func (c *Configuration) GetAITimeout() time.Duration {
	return time.Duration(c.viper.GetInt("strategy.ai_timeout_seconds")) * time.Second
}

// GetTranscriptionTimeout returns the timeout for transcript acquisition
func (c *Configuration) GetTranscriptionTimeout() time.Duration {
	return time.Duration(c.viper.GetInt("transcription.timeout_seconds")) * time.Second
}

// GetFallbackVideoDuration returns the conservative video duration assumed
// when media probing is unavailable
func (c *Configuration) GetFallbackVideoDuration() float64 {
	return c.viper.GetFloat64("video.fallback_duration_seconds")
}

// GetOpenAIAPIKey returns the OpenAI API key; empty when the AI analysis
// tier is not configured
func (c *Configuration) GetOpenAIAPIKey() string {
	return c.viper.GetString("openai.api_key")
}

// GetOpenAIModel returns the configured chat-completion model
func (c *Configuration) GetOpenAIModel() string {
	return c.viper.GetString("openai.model")
}

// GetOpenAIBaseURL returns the override base URL for the OpenAI client
func (c *Configuration) GetOpenAIBaseURL() string {
	return c.viper.GetString("openai.base_url")
}

// GetOutputPath returns the path the highlight plan is written to
func (c *Configuration) GetOutputPath() string {
	return c.viper.GetString("output.path")
}

// GetDebugMode returns whether verbose debug logging is enabled
func (c *Configuration) GetDebugMode() bool {
	return c.viper.GetBool("debug.mode")
}
