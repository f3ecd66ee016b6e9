package cli

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvKernel, EnvQuality, EnvFiller, EnvDebug} {
		t.Setenv(k, "")
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRunErrors(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name  string
		args  []string
		stdin []byte
		msg   string
	}{
		{"no args", nil, nil, "expected WIDTH HEIGHT"},
		{"bad width", []string{"abc", "10"}, nil, "invalid width"},
		{"negative height", []string{"10", "-1"}, nil, "invalid height"},
		{"empty input", []string{"10", "10"}, nil, "empty input"},
		{"unknown format", []string{"10", "10"}, []byte("GIF89a"), "unrecognized file signature"},
		{"bad kernel", []string{"-kernel", "lanczos", "10", "10"}, nil, "unknown kernel"},
		{"missing file", []string{"10", "10", filepath.Join(t.TempDir(), "nope.png")}, nil, "no such file"},
		{"truncated png", []string{"10", "10"}, testPNG(t, 4, 4)[:20], "png"},
	}
	for _, c := range cases {
		var stdout, stderr bytes.Buffer
		code := Run(c.args, bytes.NewReader(c.stdin), &stdout, &stderr)
		if code != 1 {
			t.Fatalf("%s: exit %d; want 1", c.name, code)
		}
		if !strings.HasPrefix(stderr.String(), "imgscale: ") && !strings.Contains(stderr.String(), "\nimgscale: ") {
			t.Fatalf("%s: stderr %q lacks diagnostic", c.name, stderr.String())
		}
		if !strings.Contains(stderr.String(), c.msg) {
			t.Fatalf("%s: stderr %q; want it to mention %q", c.name, stderr.String(), c.msg)
		}
		if stdout.Len() != 0 {
			t.Fatalf("%s: wrote %d bytes to stdout", c.name, stdout.Len())
		}
	}
}

func TestRunStdin(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{"4", "0"}, bytes.NewReader(testPNG(t, 8, 4)), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	cfg, err := png.DecodeConfig(&stdout)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 2 {
		t.Fatalf("output %dx%d; want 4x2", cfg.Width, cfg.Height)
	}
}

func TestRunFileAndVerbose(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, testPNG(t, 10, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := Run([]string{"-v", "-kernel", "cubic", "5", "5", path}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	cfg, err := png.DecodeConfig(&stdout)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 5 || cfg.Height != 5 {
		t.Fatalf("output %dx%d; want 5x5", cfg.Width, cfg.Height)
	}
	if !strings.Contains(stderr.String(), "cubic kernel") {
		t.Fatalf("verbose output missing: %q", stderr.String())
	}
}

func TestRunVersion(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"-version"}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if strings.TrimSpace(stdout.String()) != Version {
		t.Fatalf("version output %q; want %q", stdout.String(), Version)
	}
}

func TestRunHelp(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"-h"}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr.String(), "usage: imgscale") {
		t.Fatalf("help output %q", stderr.String())
	}
}

func TestRunEnvConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKernel, "nonsense")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"4", "0"}, bytes.NewReader(testPNG(t, 8, 4)), &stdout, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), EnvKernel) {
		t.Fatalf("exit %d, stderr %q", code, stderr.String())
	}
}
