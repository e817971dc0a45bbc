package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/pelletier/go-toml/v2"
)

// ErrNoDependencies marks a manifest that has no [dependencies] table. It is
// always reported together with apperr.ErrSchema.
var ErrNoDependencies = errors.New("no [dependencies] section")

// Document is a parsed manifest. Tables are map[string]any, arrays []any.
type Document map[string]any

// Load reads and parses a manifest file.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // manifest path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("%w: reading manifest %s: %w", apperr.ErrIO, path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse parses manifest content.
func Parse(data []byte) (Document, error) {
	doc := Document{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest TOML: %w", apperr.ErrParse, err)
	}
	return doc, nil
}

// Table navigates a dotted section name such as "workspace.package".
func (d Document) Table(section string) (map[string]any, bool) {
	var cur map[string]any = d
	for _, part := range strings.Split(section, ".") {
		next, ok := cur[part].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Value returns the raw value at section.key.
func (d Document) Value(section, key string) (any, error) {
	tbl, ok := d.Table(section)
	if !ok {
		return nil, fmt.Errorf("%w: section [%s]", apperr.ErrNotFound, section)
	}
	v, ok := tbl[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", apperr.ErrNotFound, section, key)
	}
	return v, nil
}

// String returns section.key as a string.
func (d Document) String(section, key string) (string, error) {
	v, err := d.Value(section, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is %s, not a string", apperr.ErrSchema, section, key, typeName(v))
	}
	return s, nil
}

// Strings returns section.key as a list of strings.
func (d Document) Strings(section, key string) ([]string, error) {
	v, err := d.Value(section, key)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is %s, not an array", apperr.ErrSchema, section, key, typeName(v))
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s[%d] is %s, not a string", apperr.ErrSchema, section, key, i, typeName(item))
		}
		out = append(out, s)
	}
	return out, nil
}

// Dependencies returns the entries of the [dependencies] table sorted by name.
// A manifest without a [dependencies] table is a schema error.
func (d Document) Dependencies() ([]Dependency, error) {
	raw, ok := d["dependencies"]
	if !ok {
		return nil, fmt.Errorf("%w: %w", apperr.ErrSchema, ErrNoDependencies)
	}
	tbl, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: dependencies is %s, not a table", apperr.ErrSchema, typeName(raw))
	}

	deps := make([]Dependency, 0, len(tbl))
	for name, v := range tbl {
		dep := Dependency{Name: name}
		switch entry := v.(type) {
		case string:
			dep.Version = entry
		case map[string]any:
			dep.Table = true
			dep.Version, _ = entry["version"].(string)
			dep.Path, _ = entry["path"].(string)
		default:
			return nil, fmt.Errorf("%w: dependencies.%s is %s", apperr.ErrSchema, name, typeName(v))
		}
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps, nil
}

// ReadString reads a string field from the manifest at path.
func ReadString(path, section, key string) (string, error) {
	doc, err := Load(path)
	if err != nil {
		return "", err
	}
	return doc.String(section, key)
}

// ReadStrings reads a string array field from the manifest at path.
func ReadStrings(path, section, key string) ([]string, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Strings(section, key)
}

// ReadDependencies returns the [dependencies] entries of the manifest at path.
func ReadDependencies(path string) ([]Dependency, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	deps, err := doc.Dependencies()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deps, nil
}

// AppVersion returns package.version from the Cargo.toml in packageDir.
func AppVersion(packageDir string) (string, error) {
	return ReadString(filepath.Join(packageDir, FileName), "package", "version")
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "a table"
	case bool:
		return "a boolean"
	case int64, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
