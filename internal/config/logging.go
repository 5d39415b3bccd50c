package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, text
	Dir        string          `yaml:"dir"`        // category log directory, empty = .blocksmith/logs
	DebugMode  bool            `yaml:"debug_mode"` // master toggle, false = no category logs
	Categories map[string]bool `yaml:"categories"` // per-category toggles
}

// IsCategoryEnabled reports whether logging is enabled for a category.
// Everything is off when debug_mode is off; in debug mode a category is
// on unless explicitly disabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
