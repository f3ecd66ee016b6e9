// Package cli implements the imgscale command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Fepozopo/imgscale/pkg/codec"
	"github.com/Fepozopo/imgscale/pkg/resample"
)

const usageText = `usage: imgscale [flags] WIDTH HEIGHT [FILE]

Resizes a JPEG, PNG or BMP image read from FILE (or stdin when FILE is
omitted or "-") and writes it to stdout in the same format. The aspect
ratio is kept: the image fits inside WIDTH x HEIGHT, and a 0 for either
dimension leaves that axis unconstrained.

Flags:
`

// Run executes the command with the given arguments (without the program
// name) and returns the process exit status.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := run(args, stdin, stdout, stderr)
	if err == nil {
		return 0
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "imgscale: %v\n", err)
	return 1
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("imgscale", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kernel := fs.String("kernel", cfg.Kernel.String(), "horizontal kernel: box or cubic")
	quality := fs.Int("quality", cfg.Quality, "JPEG output quality 1-100")
	noFiller := fs.Bool("no-filler", !cfg.Filler, "do not pad 3-channel pixels to 4 bytes while scaling")
	verbose := fs.Bool("v", cfg.Debug, "print conversion details to stderr")
	showVersion := fs.Bool("version", false, "print the version and exit")
	update := fs.Bool("update", false, "check for a newer release and install it")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, Version)
		return nil
	}
	if *update {
		return CheckForUpdates(stdin, stdout)
	}

	if fs.NArg() < 2 || fs.NArg() > 3 {
		fs.Usage()
		return fmt.Errorf("expected WIDTH HEIGHT [FILE], got %d arguments", fs.NArg())
	}
	want, err := parseSize(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	opts := cfg.Options()
	if opts.Kernel, err = resample.ParseKernel(*kernel); err != nil {
		return err
	}
	opts.Quality = *quality
	opts.Filler = !*noFiller

	if *verbose {
		codec.SetDebugOutput(stderr)
		defer codec.SetDebugOutput(nil)
	}

	in, closeIn, err := openInput(fs.Arg(2), stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	_, err = codec.Resize(in, stdout, want, opts)
	return err
}

func parseSize(w, h string) (resample.Size, error) {
	width, err := parseDimension("width", w)
	if err != nil {
		return resample.Size{}, err
	}
	height, err := parseDimension("height", h)
	if err != nil {
		return resample.Size{}, err
	}
	return resample.Size{Width: width, Height: height}, nil
}

func parseDimension(name, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", name, s)
	}
	return uint32(v), nil
}

// openInput returns stdin for "" and "-", otherwise the named file.
func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
