// Package semver parses and bumps the three-component versions written in
// package manifests.
package semver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fbkclanna/cargows/internal/apperr"
)

// Part names the component of a version to increment.
type Part string

const (
	Major Part = "major"
	Minor Part = "minor"
	Patch Part = "patch"
)

// ParsePart validates a bump part name.
func ParsePart(s string) (Part, error) {
	switch Part(s) {
	case Major, Minor, Patch:
		return Part(s), nil
	default:
		return "", fmt.Errorf("%w: unknown version part %q (must be major, minor, or patch)", apperr.ErrInvalidArgument, s)
	}
}

// Version is a MAJOR.MINOR.PATCH triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse reads exactly three dot-separated non-negative integers.
func Parse(s string) (Version, error) {
	fields := strings.Split(s, ".")
	if len(fields) != 3 {
		return Version{}, fmt.Errorf("%w: version %q must have exactly three components", apperr.ErrParse, s)
	}
	var nums [3]uint64
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: version %q: component %q is not a non-negative integer", apperr.ErrParse, s, f)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Bump returns the version that follows v for the given part.
func (v Version) Bump(part Part) (Version, error) {
	var n uint64
	switch part {
	case Major:
		n = v.Major
	case Minor:
		n = v.Minor
	case Patch:
		n = v.Patch
	default:
		return Version{}, fmt.Errorf("%w: unknown version part %q", apperr.ErrInvalidArgument, part)
	}
	if n == math.MaxUint64 {
		return Version{}, fmt.Errorf("%w: %s component of %s cannot be incremented", apperr.ErrInvalidArgument, part, v)
	}

	switch part {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
