package version

// Version is the release identifier, overridden at build time via
// -ldflags "-X github.com/perfclinic/memlab/internal/version.Version=...".
var Version = "dev"
