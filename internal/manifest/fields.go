package manifest

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/apperr"
)

// UpdateFields writes authors, description, repository, license and
// keywords into the [package] table. Existing keys are rewritten in place;
// missing keys are appended to the end of the table. Everything else in
// the file is left byte-for-byte intact.
func UpdateFields(path string, f Fields) error {
	kind, err := ParseKind(string(f.Kind))
	if err != nil {
		return err
	}

	return edit(path, func(doc Document, ed *Editor) error {
		if _, ok := doc.Table("package"); !ok {
			return fmt.Errorf("%w: no [package] section", apperr.ErrSchema)
		}
		if !ed.HasTable("package") {
			return fmt.Errorf("%w: package must be declared with a [package] header to be edited", apperr.ErrSchema)
		}

		if err := ed.SetStrings("package", "authors", f.Author.Entries()); err != nil {
			return err
		}
		if err := ed.SetString("package", "description", f.Description); err != nil {
			return err
		}
		if err := ed.SetString("package", "repository", f.Repository); err != nil {
			return err
		}
		if err := ed.SetString("package", "license", f.License); err != nil {
			return err
		}
		return ed.SetStrings("package", "keywords", []string{string(kind)})
	})
}
