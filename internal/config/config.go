package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// MaxMessageBytes is the ceiling for a single inbound record. Larger
	// records are answered with an error and otherwise ignored.
	MaxMessageBytes int `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	// DrawPerSecond and GuessPerSecond bound how many draw/guess actions a
	// single client may perform within one wall-clock second.
	DrawPerSecond  int `mapstructure:"draw_per_second" yaml:"draw_per_second"`
	GuessPerSecond int `mapstructure:"guess_per_second" yaml:"guess_per_second"`
	// WordOptions is how many words a drawer picks between in choice mode.
	WordOptions int `mapstructure:"word_options" yaml:"word_options"`

	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// WordsFile optionally points at a YAML list overriding the built-in
	// vocabulary.
	WordsFile string `mapstructure:"words_file" yaml:"words_file"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		MaxMessageBytes:   16384,
		DrawPerSecond:     120,
		GuessPerSecond:    8,
		WordOptions:       3,
		AllowedOrigins:    []string{"*"},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.DrawPerSecond != 0 {
		c.DrawPerSecond = other.DrawPerSecond
	}
	if other.GuessPerSecond != 0 {
		c.GuessPerSecond = other.GuessPerSecond
	}
	if other.WordOptions != 0 {
		c.WordOptions = other.WordOptions
	}
	if len(other.AllowedOrigins) != 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.WordsFile != "" {
		c.WordsFile = other.WordsFile
	}
}
