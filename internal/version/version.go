// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for --version output.
func String(binary string) string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", binary, Version, Commit, Date)
}

// UserAgent appends the version to a User-Agent product token that has none.
func UserAgent(product string) string {
	if product == "" || Version == "dev" {
		return product
	}
	for _, r := range product {
		if r == '/' || r == ' ' {
			return product
		}
	}
	return product + "/" + Version
}
