package registry

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Status classifies a declared requirement against the latest release.
type Status string

const (
	StatusCurrent  Status = "current"
	StatusOutdated Status = "outdated"
	StatusUnknown  Status = "unknown"
)

// Compare reports whether a dependency requirement still admits the latest
// published version. Bare and caret requirements pin the leftmost non-zero
// component, tilde pins major.minor (or major when only a major is given),
// and = pins the exact version. Compound, wildcard and comparison
// requirements are StatusUnknown.
func Compare(requirement, latest string) Status {
	lv := canonical(latest)
	req := strings.TrimSpace(requirement)
	if lv == "" || req == "" || strings.ContainsAny(req, ",*<> ") {
		return StatusUnknown
	}

	op := ""
	for _, p := range []string{"^", "~", "="} {
		if strings.HasPrefix(req, p) {
			op = p
			req = strings.TrimPrefix(req, p)
			break
		}
	}
	rv := canonical(req)
	if rv == "" {
		return StatusUnknown
	}
	if semver.Compare(rv, lv) >= 0 {
		return StatusCurrent
	}

	n := len(strings.Split(req, "."))
	var admits bool
	switch op {
	case "=":
		admits = false
	case "~":
		admits = tildePrefix(rv, n) == tildePrefix(lv, n)
	default:
		admits = caretPrefix(rv, n) == caretPrefix(lv, n)
	}
	if admits {
		return StatusCurrent
	}
	return StatusOutdated
}

// caretPrefix returns the components a caret requirement with n declared
// components holds fixed.
func caretPrefix(v string, n int) string {
	major, minor, patch := split(v)
	switch {
	case major != "0" || n == 1:
		return major
	case minor != "0" || n == 2:
		return major + "." + minor
	default:
		return major + "." + minor + "." + patch
	}
}

func tildePrefix(v string, n int) string {
	major, minor, _ := split(v)
	if n == 1 {
		return major
	}
	return major + "." + minor
}

func split(v string) (major, minor, patch string) {
	core := strings.TrimPrefix(semver.Canonical(v), "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	parts := strings.SplitN(core, ".", 3)
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return parts[0], parts[1], parts[2]
}

func canonical(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return ""
	}
	return semver.Canonical("v" + v)
}
