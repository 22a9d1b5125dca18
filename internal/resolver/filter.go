package resolver

import (
	"slices"

	"github.com/dbeckwith/rust-latest/internal/manifest"
)

// Viable reports whether every in-scope package is available on every in-scope
// target for which the manifest carries an explicit availability entry.
//
// Pairs with no entry are skipped entirely: they count neither for nor against
// viability. A manifest where no selected pair has an entry is viable by
// vacuous truth, which lets broad target matrices still match very old
// manifests that published almost no availability data.
func Viable(m *manifest.Manifest, packages, ignored, targets []string) bool {
	for name, pkg := range m.Packages {
		if slices.Contains(ignored, name) {
			continue
		}
		if !slices.Contains(packages, name) {
			continue
		}
		for _, target := range targets {
			info, ok := pkg.Targets[target]
			if !ok {
				continue
			}
			if !info.Available {
				return false
			}
		}
	}
	return true
}
