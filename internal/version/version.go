// Package version holds build metadata for cmd/jyro, set at build time via
// -ldflags (e.g. -X jyro/internal/version.GitCommit=$(git rev-parse HEAD)).
package version

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)
