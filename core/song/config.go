package song

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultSeparator joins multi-valued metadata when rendered.
const DefaultSeparator = ", "

// MetadataConfiguration controls how metadata values are rendered.
type MetadataConfiguration struct {
	Separator string `yaml:"separator"`
}

// Configuration is the rendering policy shared by the formatters. It does
// not change the shape of a song.
type Configuration struct {
	// Evaluate renders meta-expressions instead of printing them verbatim.
	// Only the ChordPro formatter can print them verbatim.
	Evaluate bool                  `yaml:"evaluate"`
	Metadata MetadataConfiguration `yaml:"metadata"`
	// Key renders chords in this key instead of the song key.
	Key string `yaml:"key"`
	// ExpandChorusDirective replaces {chorus} with the preceding chorus.
	ExpandChorusDirective bool `yaml:"expandChorusDirective"`
	// UseUnicodeModifiers renders ♯ and ♭ instead of # and b.
	UseUnicodeModifiers bool `yaml:"useUnicodeModifiers"`
	// NormalizeChords respells chords for the key they are rendered in.
	NormalizeChords bool `yaml:"normalizeChords"`
}

// Option changes a Configuration.
type Option func(*Configuration)

// DefaultConfiguration returns the default rendering policy.
func DefaultConfiguration() Configuration {
	return Configuration{
		Metadata:        MetadataConfiguration{Separator: DefaultSeparator},
		NormalizeChords: true,
	}
}

// NewConfiguration returns the default configuration with opts applied.
func NewConfiguration(opts ...Option) Configuration {
	c := DefaultConfiguration()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithEvaluate sets whether meta-expressions are evaluated.
func WithEvaluate(evaluate bool) Option {
	return func(c *Configuration) { c.Evaluate = evaluate }
}

// WithSeparator sets the separator for multi-valued metadata.
func WithSeparator(sep string) Option {
	return func(c *Configuration) { c.Metadata.Separator = sep }
}

// WithKey sets the key chords are rendered in.
func WithKey(key string) Option {
	return func(c *Configuration) { c.Key = key }
}

// WithExpandChorusDirective sets whether {chorus} is expanded.
func WithExpandChorusDirective(expand bool) Option {
	return func(c *Configuration) { c.ExpandChorusDirective = expand }
}

// WithUnicodeModifiers sets whether ♯ and ♭ are used.
func WithUnicodeModifiers(unicode bool) Option {
	return func(c *Configuration) { c.UseUnicodeModifiers = unicode }
}

// WithNormalizeChords sets whether chords are respelled for their key.
func WithNormalizeChords(normalize bool) Option {
	return func(c *Configuration) { c.NormalizeChords = normalize }
}

// LoadConfiguration reads a YAML configuration file. Fields missing from
// the file keep their defaults.
func LoadConfiguration(path string) (Configuration, error) {
	c := DefaultConfiguration()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Metadata.Separator == "" {
		c.Metadata.Separator = DefaultSeparator
	}
	return c, nil
}
