package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/imgscale/pkg/codec"
	"github.com/Fepozopo/imgscale/pkg/resample"
)

// Config holds the defaults a run starts from before flags are applied.
type Config struct {
	Kernel  resample.Kernel
	Quality int
	Filler  bool
	Debug   bool
}

// Environment variables read by LoadConfig.
const (
	EnvKernel  = "IMGSCALE_KERNEL"
	EnvQuality = "IMGSCALE_JPEG_QUALITY"
	EnvFiller  = "IMGSCALE_FILLER"
	EnvDebug   = "IMGSCALE_DEBUG"
)

// LoadConfig loads the given .env files (".env" when none are named) into the
// process environment and builds a Config from it. Variables already set in
// the environment win over the file. A missing .env file is not an error.
func LoadConfig(envFiles ...string) (Config, error) {
	// .env is optional
	_ = godotenv.Load(envFiles...)
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	opts := codec.DefaultOptions()
	cfg := Config{Kernel: opts.Kernel, Quality: opts.Quality, Filler: opts.Filler}

	if v := getenv(EnvKernel); v != "" {
		k, err := resample.ParseKernel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvKernel, err)
		}
		cfg.Kernel = k
	}
	if v := getenv(EnvQuality); v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || q < 1 || q > 100 {
			return cfg, fmt.Errorf("%s: invalid quality %q", EnvQuality, v)
		}
		cfg.Quality = q
	}
	if v := getenv(EnvFiller); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvFiller, err)
		}
		cfg.Filler = b
	}
	debug := getenv(EnvDebug)
	cfg.Debug = debug == "1" || debug == "true"
	return cfg, nil
}

// Options converts the configuration into codec options.
func (c Config) Options() codec.Options {
	return codec.Options{Kernel: c.Kernel, Filler: c.Filler, Quality: c.Quality}
}
