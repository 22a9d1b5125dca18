package manifest

import (
	"time"
)

// DateLayout is the calendar-date layout used both in manifest bodies and in
// date-stamped distribution URLs.
const DateLayout = "2006-01-02"

// Date is a calendar date as published in a channel manifest. It decodes from
// the quoted ISO date string in the TOML body.
type Date struct {
	time.Time
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(DateLayout, string(text))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{d.AddDate(0, 0, days)}
}

// Manifest is one day's published release metadata for a channel. The date is
// the manifest's own publication date, independent of the URL it was fetched
// from.
type Manifest struct {
	Date     Date                      `toml:"date"`
	Packages map[string]PackageTargets `toml:"pkg"`
	Profiles map[string][]string       `toml:"profiles"`
}

// PackageTargets describes one package's version and per-target availability.
// A target absent from the map carries no availability information at all,
// which is not the same as unavailable.
type PackageTargets struct {
	Version string                 `toml:"version"`
	Targets map[string]PackageInfo `toml:"target"`
}

// PackageInfo is the per-target entry for a package.
type PackageInfo struct {
	Available bool `toml:"available"`
}
