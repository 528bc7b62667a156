package tools

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors the convert flags that make sense as per-user defaults.
// Values are pointers so that an absent key leaves the flag default alone.
type Config struct {
	ZScale    *float64 `toml:"zscale"`
	ZOffset   *float64 `toml:"zoffset"`
	Reproject *string  `toml:"reproject"`
	Resample  *float64 `toml:"resample"`
	Srid      *int     `toml:"srid"`
	Ascii     *bool    `toml:"ascii"`
	Force     *bool    `toml:"force"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config [%s]: %w", path, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config [%s]: %w", path, err)
	}
	return &config, nil
}

// applyConfigDefaults overlays config file values onto convert flags the
// user did not set explicitly. Precedence is flag > config > built-in
// default.
func applyConfigDefaults(flagCommand *flag.FlagSet, flags *FlagsForCommandConvert) error {
	if *flags.Config == "" {
		return nil
	}

	config, err := LoadConfig(*flags.Config)
	if err != nil {
		return err
	}

	setByUser := make(map[string]bool)
	flagCommand.Visit(func(f *flag.Flag) {
		setByUser[f.Name] = true
	})

	if config.ZScale != nil && !setByUser["zscale"] && !setByUser["z"] {
		*flags.ZScale = *config.ZScale
	}
	if config.ZOffset != nil && !setByUser["zoffset"] {
		*flags.ZOffset = *config.ZOffset
	}
	if config.Reproject != nil && !setByUser["reproject"] && !setByUser["p"] {
		*flags.Reproject = *config.Reproject
	}
	if config.Resample != nil && !setByUser["resample"] && !setByUser["s"] {
		*flags.Resample = *config.Resample
	}
	if config.Srid != nil && !setByUser["srid"] && !setByUser["e"] {
		*flags.Srid = *config.Srid
	}
	if config.Ascii != nil && !setByUser["ascii"] && !setByUser["a"] {
		*flags.Ascii = *config.Ascii
	}
	if config.Force != nil && !setByUser["force"] && !setByUser["f"] {
		*flags.Force = *config.Force
	}

	return nil
}
