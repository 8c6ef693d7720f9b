// Package version resolves which API contract version a request targets.
package version

import (
	"strconv"
	"strings"
)

// Version is a normalised API version such as "1.0" or "2.0". Strings that
// do not look like a version are kept as given so they can be reported.
type Version string

const (
	V1 Version = "1.0"
	V2 Version = "2.0"
)

// Parse normalises a raw version signal. Surrounding whitespace and a
// leading "v" are dropped, a bare major gains a ".0" minor, and numeric
// components lose leading zeros. Blank input yields "".
func Parse(raw string) Version {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	if s == "" {
		return ""
	}
	major, minor, hasMinor := strings.Cut(s, ".")
	maj, err := strconv.Atoi(major)
	if err != nil || maj < 0 {
		return Version(s)
	}
	mnr := 0
	if hasMinor {
		mnr, err = strconv.Atoi(minor)
		if err != nil || mnr < 0 {
			return Version(s)
		}
	}
	return Version(strconv.Itoa(maj) + "." + strconv.Itoa(mnr))
}

func (v Version) String() string { return string(v) }

// Signals carries the raw version inputs of one request.
type Signals struct {
	Path   string
	Header string
	Query  string
}

// Resolver picks a version from request signals.
type Resolver struct {
	Default Version
}

// NewResolver returns a Resolver falling back to def, or to V1 when def is blank.
func NewResolver(def string) Resolver {
	d := Parse(def)
	if d == "" {
		d = V1
	}
	return Resolver{Default: d}
}

// Resolve returns the first present signal in precedence order path,
// header, query. It never fails.
func (r Resolver) Resolve(s Signals) Version {
	for _, raw := range []string{s.Path, s.Header, s.Query} {
		if v := Parse(raw); v != "" {
			return v
		}
	}
	return r.Default
}
