package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low to high):
//  1. defaults (Default())
//  2. file (YAML), from the path argument or BOXSCAN_CONFIG
//  3. env (prefix BOXSCAN_)
//
// Flag overrides are the caller's business and sit above all three.
func Load(path string) (*Config, error) {
	base := Default()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("BOXSCAN_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: BOXSCAN_BOX, BOXSCAN_MIN_DARK_RATIO, ...
	// Keys keep their underscores to match the koanf tags; the crop
	// block nests, so BOXSCAN_CROP_TOP becomes crop.top.
	envProvider := env.Provider("BOXSCAN_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "BOXSCAN_"))
		if after, ok := strings.CutPrefix(s, "crop_"); ok {
			return "crop." + after
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
