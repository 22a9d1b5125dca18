package resolver

import (
	"testing"
	"time"

	"github.com/dbeckwith/rust-latest/internal/manifest"
)

func day(s string) manifest.Date {
	t, err := time.Parse(manifest.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return manifest.Date{Time: t}
}

// buildManifest constructs a manifest from package → target → available.
// A nil target map produces a package with no availability entries at all.
func buildManifest(date string, packages map[string]map[string]bool) *manifest.Manifest {
	m := &manifest.Manifest{
		Date:     day(date),
		Packages: map[string]manifest.PackageTargets{},
		Profiles: map[string][]string{},
	}
	var names []string
	for name, targets := range packages {
		pt := manifest.PackageTargets{
			Version: "1.75.0 (abcdef123 2024-01-09)",
			Targets: map[string]manifest.PackageInfo{},
		}
		for target, available := range targets {
			pt.Targets[target] = manifest.PackageInfo{Available: available}
		}
		m.Packages[name] = pt
		names = append(names, name)
	}
	m.Profiles["default"] = names
	return m
}

func TestViableAllAvailable(t *testing.T) {
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust":  {"x86_64-unknown-linux-gnu": true, "aarch64-apple-darwin": true},
		"rustc": {"x86_64-unknown-linux-gnu": true, "aarch64-apple-darwin": true},
	})
	targets := []string{"x86_64-unknown-linux-gnu", "aarch64-apple-darwin"}

	if !Viable(m, []string{"rust", "rustc"}, nil, targets) {
		t.Error("expected viable when every entry is available")
	}
}

func TestViableOneUnavailable(t *testing.T) {
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust":  {"x86_64-unknown-linux-gnu": true},
		"rustc": {"x86_64-unknown-linux-gnu": false},
	})

	if Viable(m, []string{"rust", "rustc"}, nil, []string{"x86_64-unknown-linux-gnu"}) {
		t.Error("expected not viable when an entry is unavailable")
	}
}

func TestViableEmptyPackageSet(t *testing.T) {
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust": {"x86_64-unknown-linux-gnu": false},
	})

	if !Viable(m, nil, nil, []string{"x86_64-unknown-linux-gnu"}) {
		t.Error("expected viable for empty selected-package set")
	}
}

func TestViableMissingEntriesSkipped(t *testing.T) {
	// rustc has no entry for the darwin target; its absence must not count
	// against viability.
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust":  {"x86_64-unknown-linux-gnu": true, "aarch64-apple-darwin": true},
		"rustc": {"x86_64-unknown-linux-gnu": true},
	})
	targets := []string{"x86_64-unknown-linux-gnu", "aarch64-apple-darwin"}

	if !Viable(m, []string{"rust", "rustc"}, nil, targets) {
		t.Error("expected missing entries to be skipped, not treated as unavailable")
	}
}

func TestViableNoEntriesAtAll(t *testing.T) {
	// A manifest with no explicit availability entries for any selected pair
	// is viable by vacuous truth.
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust": nil,
	})

	if !Viable(m, []string{"rust"}, nil, []string{"x86_64-unknown-linux-gnu"}) {
		t.Error("expected manifest with no observed entries to be viable")
	}
}

func TestViableIgnoredPackages(t *testing.T) {
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust":       {"x86_64-unknown-linux-gnu": true},
		"rust-mingw": {"x86_64-unknown-linux-gnu": false},
	})
	packages := []string{"rust", "rust-mingw"}
	targets := []string{"x86_64-unknown-linux-gnu"}

	if Viable(m, packages, nil, targets) {
		t.Error("expected not viable when rust-mingw is checked")
	}
	if !Viable(m, packages, []string{"rust-mingw"}, targets) {
		t.Error("expected viable when rust-mingw is ignored")
	}
}

func TestViablePackagesOutsideProfileIgnored(t *testing.T) {
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust":         {"x86_64-unknown-linux-gnu": true},
		"miri-preview": {"x86_64-unknown-linux-gnu": false},
	})

	if !Viable(m, []string{"rust"}, nil, []string{"x86_64-unknown-linux-gnu"}) {
		t.Error("expected packages outside the profile to be skipped")
	}
}

func TestViableIdempotent(t *testing.T) {
	m := buildManifest("2024-01-10", map[string]map[string]bool{
		"rust":  {"x86_64-unknown-linux-gnu": true},
		"rustc": {"x86_64-unknown-linux-gnu": false},
	})
	packages := []string{"rust", "rustc"}
	targets := []string{"x86_64-unknown-linux-gnu"}

	first := Viable(m, packages, nil, targets)
	for i := 0; i < 5; i++ {
		if got := Viable(m, packages, nil, targets); got != first {
			t.Fatalf("Viable() flipped from %v to %v on repeat evaluation", first, got)
		}
	}
}
