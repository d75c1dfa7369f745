package openai

import (
	"time"

	"github.com/manojvishalkijo/xevedoc/constants"
)

// Config holds everything the OpenAI-compatible client needs. Categories is
// the taxonomy offered to the classifier; empty means the built-in set.
type Config struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
	Categories  []string
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Timeout <= 0 {
		c.Timeout = 45 * time.Second
	}
	if len(c.Categories) == 0 {
		c.Categories = constants.Categories()
	}
}
