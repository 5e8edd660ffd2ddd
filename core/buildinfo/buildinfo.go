// Package buildinfo carries version metadata stamped in at link time:
//
//	go build -ldflags "-X 'github.com/m3rciful/electionbot/core/buildinfo.Version=v0.3.0' \
//	  -X 'github.com/m3rciful/electionbot/core/buildinfo.Commit=$(git rev-parse --short HEAD)' \
//	  -X 'github.com/m3rciful/electionbot/core/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)'" ./cmd/electionbot
package buildinfo

import "fmt"

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "local"
	// Date is the build time in RFC3339.
	Date = ""
)

// String renders all three fields on one line.
func String() string {
	date := Date
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, date)
}
