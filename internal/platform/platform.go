// Package platform holds the static Rust platform data the resolver filters
// against: the Tier-1 target list, the mapping from the running build to a
// Rust target triple, and the globally-ignored packages.
package platform

import (
	"fmt"
	"runtime"
	"slices"
)

// Tier1Targets are the officially supported Tier-1 Rust target triples,
// per https://doc.rust-lang.org/nightly/rustc/platform-support.html.
var Tier1Targets = []string{
	"aarch64-apple-darwin",
	"aarch64-pc-windows-msvc",
	"aarch64-unknown-linux-gnu",
	"i686-pc-windows-msvc",
	"i686-unknown-linux-gnu",
	"x86_64-pc-windows-gnu",
	"x86_64-pc-windows-msvc",
	"x86_64-unknown-linux-gnu",
}

// baseIgnored are packages excluded from viability checks everywhere: they
// only ever exist for a handful of platforms, so requiring them across a broad
// target matrix would reject every manifest.
var baseIgnored = []string{
	"lldb-preview",
	"rust-mingw",
}

// expectedPackages maps a target triple to the normally-ignored packages that
// are actually published for it.
var expectedPackages = map[string][]string{
	"i686-apple-darwin":     {"lldb-preview"},
	"x86_64-apple-darwin":   {"lldb-preview"},
	"i686-pc-windows-gnu":   {"rust-mingw"},
	"x86_64-pc-windows-gnu": {"rust-mingw"},
}

// BaseIgnoredPackages returns the ignored-package set used when filtering
// against the full Tier-1 target matrix.
func BaseIgnoredPackages() []string {
	return slices.Clone(baseIgnored)
}

// IgnoredPackages returns the ignored-package set for a single-target lookup.
// Packages expected to exist on the given target are checked rather than
// ignored.
func IgnoredPackages(target string) []string {
	expected := expectedPackages[target]
	ignored := make([]string, 0, len(baseIgnored))
	for _, pkg := range baseIgnored {
		if !slices.Contains(expected, pkg) {
			ignored = append(ignored, pkg)
		}
	}
	return ignored
}

// currentTriples maps the running Go build to the matching Rust target triple.
var currentTriples = map[string]string{
	"darwin/arm64":  "aarch64-apple-darwin",
	"darwin/amd64":  "x86_64-apple-darwin",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"linux/386":     "i686-unknown-linux-gnu",
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"windows/arm64": "aarch64-pc-windows-msvc",
	"windows/386":   "i686-pc-windows-msvc",
	"windows/amd64": "x86_64-pc-windows-msvc",
}

// CurrentTarget returns the Rust target triple matching the current build
// platform.
func CurrentTarget() (string, error) {
	key := runtime.GOOS + "/" + runtime.GOARCH
	triple, ok := currentTriples[key]
	if !ok {
		return "", fmt.Errorf("no Rust target known for platform %s", key)
	}
	return triple, nil
}
