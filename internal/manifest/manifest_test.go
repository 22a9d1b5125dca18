package manifest

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

const sampleManifest = `
manifest-version = "2"
date = "2024-01-10"

[pkg.rust]
version = "1.75.0 (abcdef123 2024-01-09)"

[pkg.rust.target.x86_64-unknown-linux-gnu]
available = true
url = "https://static.rust-lang.org/dist/2024-01-10/rust-1.75.0-x86_64-unknown-linux-gnu.tar.gz"

[pkg.rust.target.aarch64-apple-darwin]
available = false

[pkg.rustc]
version = "1.75.0 (abcdef123 2024-01-09)"

[pkg.rustc.target.x86_64-unknown-linux-gnu]
available = true

[profiles]
default = ["rust", "rustc"]
minimal = ["rustc"]
`

func TestManifestDecode(t *testing.T) {
	var m Manifest
	if err := toml.Unmarshal([]byte(sampleManifest), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := m.Date.String(); got != "2024-01-10" {
		t.Errorf("Date = %q, want %q", got, "2024-01-10")
	}

	rust, ok := m.Packages["rust"]
	if !ok {
		t.Fatal("missing pkg.rust")
	}
	if rust.Version != "1.75.0 (abcdef123 2024-01-09)" {
		t.Errorf("rust version = %q", rust.Version)
	}

	linux, ok := rust.Targets["x86_64-unknown-linux-gnu"]
	if !ok {
		t.Fatal("missing rust target x86_64-unknown-linux-gnu")
	}
	if !linux.Available {
		t.Error("expected x86_64-unknown-linux-gnu to be available")
	}

	darwin, ok := rust.Targets["aarch64-apple-darwin"]
	if !ok {
		t.Fatal("missing rust target aarch64-apple-darwin")
	}
	if darwin.Available {
		t.Error("expected aarch64-apple-darwin to be unavailable")
	}

	if got := len(m.Profiles["default"]); got != 2 {
		t.Errorf("default profile has %d packages, want 2", got)
	}
}

func TestManifestDecodeBadDate(t *testing.T) {
	var m Manifest
	err := toml.Unmarshal([]byte(`date = "not-a-date"`), &m)
	if err == nil {
		t.Fatal("expected decode error for malformed date")
	}
}

func TestDateAddDays(t *testing.T) {
	var d Date
	if err := d.UnmarshalText([]byte("2024-01-10")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}

	tests := []struct {
		days int
		want string
	}{
		{0, "2024-01-10"},
		{-1, "2024-01-09"},
		{-10, "2023-12-31"},
		{5, "2024-01-15"},
	}
	for _, tt := range tests {
		if got := d.AddDays(tt.days).String(); got != tt.want {
			t.Errorf("AddDays(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
