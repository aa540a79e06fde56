package config

import "time"

// MLConfig represents the configuration for the ML classifier provider
type MLConfig struct {
	Provider string
	Enabled  bool
	Timeout  time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// ContextConfig represents the context tracker parameters
type ContextConfig struct {
	ActiveWindow   time.Duration
	OTPWindow      time.Duration
	BurstThreshold int
}

// GetML returns the ML provider configuration
func (c *Config) GetML() MLConfig {
	timeout, err := c.GetDuration("ml.timeout")
	if err != nil {
		timeout = 5 * time.Second
	}
	return MLConfig{
		Provider: c.GetString("ml.provider"),
		Enabled:  c.GetBool("ml.enabled"),
		Timeout:  timeout,
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetContext returns the context tracker configuration
func (c *Config) GetContext() ContextConfig {
	activeWindow, err := c.GetDuration("context.active_window")
	if err != nil {
		activeWindow = 10 * time.Minute
	}
	otpWindow, err := c.GetDuration("context.otp_window")
	if err != nil {
		otpWindow = 5 * time.Minute
	}
	return ContextConfig{
		ActiveWindow:   activeWindow,
		OTPWindow:      otpWindow,
		BurstThreshold: c.GetInt("context.burst_threshold"),
	}
}
