package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extract  ExtractConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
}

// ExtractConfig holds text-extraction configuration
type ExtractConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Antiword  string // binary name or absolute path; if empty -> "antiword"

	TesseractLang string // default "eng"

	// OCRTargetHeight is the pixel height images are scaled to before OCR.
	// Smaller images are never upscaled.
	OCRTargetHeight int
}

// LLMConfig holds analysis-backend configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration

	// Categories overrides the built-in category set when non-empty.
	Categories []string
}

// PipelineConfig holds batch-execution configuration
type PipelineConfig struct {
	Workers         int
	ExtractTimeout  time.Duration
	AnalysisTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Pdftotext:       getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Tesseract:       getEnv("TESSERACT_BIN", "tesseract"),
			Antiword:        getEnv("ANTIWORD_BIN", "antiword"),
			TesseractLang:   getEnv("TESSERACT_LANG", "eng"),
			OCRTargetHeight: getEnvAsInt("OCR_TARGET_HEIGHT", 2000),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.2),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			Categories:  getEnvAsList("XEVEDOC_CATEGORIES"),
		},
		Pipeline: PipelineConfig{
			Workers:         getEnvAsInt("XEVEDOC_WORKERS", 4),
			ExtractTimeout:  getEnvAsDuration("XEVEDOC_EXTRACT_TIMEOUT", 2*time.Minute),
			AnalysisTimeout: getEnvAsDuration("XEVEDOC_ANALYSIS_TIMEOUT", time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Pipeline.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "XEVEDOC_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}
