package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Fepozopo/imgscale/pkg/resample"
)

func TestConfigFromEnv(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{"defaults", nil, Config{Kernel: resample.Box, Quality: 95, Filler: true}, false},
		{"all set", map[string]string{
			EnvKernel:  "cubic",
			EnvQuality: "80",
			EnvFiller:  "0",
			EnvDebug:   "1",
		}, Config{Kernel: resample.Cubic, Quality: 80, Filler: false, Debug: true}, false},
		{"debug true", map[string]string{EnvDebug: "true"}, Config{Kernel: resample.Box, Quality: 95, Filler: true, Debug: true}, false},
		{"bad kernel", map[string]string{EnvKernel: "sinc"}, Config{}, true},
		{"bad quality", map[string]string{EnvQuality: "0"}, Config{}, true},
		{"bad filler", map[string]string{EnvFiller: "maybe"}, Config{}, true},
	}
	for _, c := range cases {
		cfg, err := configFromEnv(func(k string) string { return c.env[k] })
		if c.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", c.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if cfg != c.want {
			t.Fatalf("%s: got %+v; want %+v", c.name, cfg, c.want)
		}
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already present
	os.Unsetenv(EnvKernel)
	os.Unsetenv(EnvQuality)

	path := filepath.Join(t.TempDir(), ".env")
	content := "# imgscale settings\n" + EnvKernel + "=cubic\nexport " + EnvQuality + "=\"70\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvKernel)
		os.Unsetenv(EnvQuality)
	})

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Kernel != resample.Cubic || cfg.Quality != 70 {
		t.Fatalf("config %+v; want cubic kernel, quality 70", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Quality != 95 || !cfg.Filler {
		t.Fatalf("config %+v; want defaults", cfg)
	}
}
