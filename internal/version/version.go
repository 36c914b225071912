package version

// Version is the termid version. Overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/termid/internal/version.Version=...".
var Version = "0.1.0-dev"
