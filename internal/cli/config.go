package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator"
	"github.com/joho/godotenv"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/pipeline"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// defaultConfigFile is read from the working directory when present.
	defaultConfigFile = "genogram.toml"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = ":8080"

	// defaultMaxBody caps request bodies of the serve command (bytes).
	defaultMaxBody = 1 << 20
)

// Environment variables read by the CLI. A .env file in the working
// directory is loaded first; variables already set in the process win.
const (
	envConfig = "GENOGRAM_CONFIG"
	envIcons  = "GENOGRAM_ICONS"
	envAddr   = "GENOGRAM_ADDR"
)

// =============================================================================
// Config
// =============================================================================

// Config is the decoded genogram.toml file.
//
//	[layout]
//	icon_size = 60
//	spacing_x = 150
//
//	[render]
//	format = "svg"
//	icons = "assets/icons"
//
//	[server]
//	addr = ":9090"
type Config struct {
	Layout layout.Metrics `toml:"layout"`
	Render RenderConfig   `toml:"render"`
	Server ServerConfig   `toml:"server"`
}

// RenderConfig holds defaults for the render, layout and dot commands.
type RenderConfig struct {
	Format string  `toml:"format" validate:"omitempty,oneof=html svg json dot nodelink pdf png"`
	Style  string  `toml:"style"`
	Title  string  `toml:"title" validate:"max=200"`
	Icons  string  `toml:"icons"`
	Scale  float64 `toml:"scale" validate:"gte=0"`
}

// ServerConfig holds the serve command settings.
type ServerConfig struct {
	Addr    string `toml:"addr" validate:"required"`
	MaxBody int64  `toml:"max_body" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Layout: layout.DefaultMetrics(),
		Render: RenderConfig{
			Format: pipeline.DefaultFormat,
			Style:  pipeline.DefaultStyle,
			Title:  pipeline.DefaultTitle,
			Scale:  pipeline.DefaultScale,
		},
		Server: ServerConfig{
			Addr:    defaultAddr,
			MaxBody: defaultMaxBody,
		},
	}
}

// LoadConfig reads the configuration file at path on top of the defaults.
//
// An empty path falls back to $GENOGRAM_CONFIG and then to genogram.toml in
// the working directory; only an explicitly named file has to exist.
// $GENOGRAM_ICONS and $GENOGRAM_ADDR override the file. Unknown keys and
// values failing validation are INVALID_CONFIG errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(envConfig); env != "" {
			path, explicit = env, true
		} else {
			path = defaultConfigFile
		}
	}

	if _, err := os.Stat(path); err != nil {
		if explicit || !stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	} else {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if v := os.Getenv(envIcons); v != "" {
		cfg.Render.Icons = v
	}
	if v := os.Getenv(envAddr); v != "" {
		cfg.Server.Addr = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks struct constraints and that the render style exists.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	if c.Render.Style != "" {
		if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
			return err
		}
	}
	return nil
}

// loadEnv loads .env from the working directory if it exists.
func loadEnv() error {
	err := godotenv.Load()
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
}
