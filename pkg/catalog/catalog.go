// Package catalog loads message catalog overrides from YAML files:
//
//	base: schema
//	messages:
//	  "0x24": "expected {constraint}, got {value}"
//	  0x03: "{field} is not a known rule"
//	  "0x22": ""
//
// An empty message removes the code from the catalog, so errors with it are not reported.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/acronis/go-verrors"
)

const (
	BaseDefault = "default"
	BaseSchema  = "schema"
)

var ErrUnknownBase = errors.New("unknown base catalog")

type Config struct {
	// Base selects the catalog the messages are applied to. Empty means the catalog passed to Apply.
	Base     string            `mapstructure:"base"`
	Messages map[string]string `mapstructure:"messages"`
}

func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	cfg := &Config{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err = dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode catalog config: %w", err)
	}
	return cfg, nil
}

// Apply returns a copy of the selected base catalog with the configured messages.
func (c *Config) Apply(base *verrors.Catalog) (*verrors.Catalog, error) {
	out, err := c.base(base)
	if err != nil {
		return nil, err
	}
	for key, msg := range c.Messages {
		code, err := verrors.ParseCode(key)
		if err != nil {
			return nil, err
		}
		if msg == "" {
			out = out.Without(code)
			continue
		}
		if out, err = out.With(code, msg); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Config) base(fallback *verrors.Catalog) (*verrors.Catalog, error) {
	switch c.Base {
	case "":
		if fallback == nil {
			return verrors.DefaultCatalog(), nil
		}
		return fallback, nil
	case BaseDefault:
		return verrors.DefaultCatalog(), nil
	case BaseSchema:
		return verrors.SchemaCatalog(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBase, c.Base)
	}
}

// Load reads the overrides from path and applies them to base.
func Load(path string, base *verrors.Catalog) (*verrors.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.Apply(base)
}
