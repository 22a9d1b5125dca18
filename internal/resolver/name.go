package resolver

import (
	"fmt"
	"regexp"

	"github.com/dbeckwith/rust-latest/internal/manifest"
)

var rustVersionPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)`)

// ToolchainName derives the human-facing toolchain identifier for a viable
// manifest. Default stable lookups name the release by its semantic version;
// everything else falls through to the channel-plus-date form.
func ToolchainName(m *manifest.Manifest, channel string, forceDate bool) string {
	if !forceDate && channel == "stable" {
		if version, ok := rustVersion(m); ok {
			return version
		}
	}
	return fmt.Sprintf("%s-%s", channel, m.Date)
}

// rustVersion extracts the MAJOR.MINOR.PATCH prefix of the "rust" package's
// version string, discarding any trailing commit or date suffix.
func rustVersion(m *manifest.Manifest) (string, bool) {
	pkg, ok := m.Packages["rust"]
	if !ok {
		return "", false
	}
	captures := rustVersionPattern.FindStringSubmatch(pkg.Version)
	if captures == nil {
		return "", false
	}
	return captures[1], true
}
