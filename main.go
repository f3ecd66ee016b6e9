// Command imgscale resizes JPEG, PNG and BMP images while keeping their
// aspect ratio.
package main

import (
	"os"

	"github.com/Fepozopo/imgscale/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
