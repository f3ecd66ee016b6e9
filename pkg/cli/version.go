package cli

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/Fepozopo/imgscale/pkg/cli.Version=x.y.z".
var Version = "0.1.0"
