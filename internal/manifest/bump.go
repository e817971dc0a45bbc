package manifest

import (
	"fmt"
	"strings"

	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/fbkclanna/cargows/internal/semver"
)

// Bump records a version transition applied to a manifest.
type Bump struct {
	Section string
	From    semver.Version
	To      semver.Version
}

func (b Bump) String() string {
	return fmt.Sprintf("%s.version %s -> %s", b.Section, b.From, b.To)
}

// BumpVersion increments package.version in the manifest at path.
func BumpVersion(path string, part semver.Part) (Bump, error) {
	return BumpVersionIn(path, "package", part)
}

// BumpVersionIn increments the version key of the given table, for example
// "workspace.package" in a virtual workspace root. Only the quoted version
// value is rewritten. An invalid part fails before the file is read.
func BumpVersionIn(path, section string, part semver.Part) (Bump, error) {
	if _, err := semver.ParsePart(string(part)); err != nil {
		return Bump{}, err
	}

	b := Bump{Section: section}
	err := edit(path, func(doc Document, ed *Editor) error {
		raw, err := doc.Value(section, "version")
		if err != nil {
			return err
		}
		current, ok := raw.(string)
		if !ok {
			if tbl, isTable := raw.(map[string]any); isTable && tbl["workspace"] == true {
				return fmt.Errorf("%w: %s.version is inherited from the workspace; bump workspace.package instead", apperr.ErrSchema, section)
			}
			return fmt.Errorf("%w: %s.version is %s, not a string", apperr.ErrSchema, section, typeName(raw))
		}

		from, err := semver.Parse(strings.TrimSpace(current))
		if err != nil {
			return err
		}
		to, err := from.Bump(part)
		if err != nil {
			return err
		}
		if err := ed.SetString(section, "version", to.String()); err != nil {
			return err
		}
		b.From, b.To = from, to
		return nil
	})
	if err != nil {
		return Bump{}, err
	}
	return b, nil
}
