package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fbkclanna/cargows/internal/manifest"
)

// LocalDependency is a dependency that declares both a path and a version.
type LocalDependency struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// Resolver expands workspace members relative to Dir.
type Resolver struct {
	Dir string
}

// ListMembers returns the member directories declared by the workspace
// manifest. A manifest without workspace.members yields an empty list.
// Literal entries are returned unchanged; glob entries are expanded to the
// matching directories, sorted, at the entry's position.
func (r Resolver) ListMembers(manifestPath string) ([]string, error) {
	doc, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	members, err := optionalStrings(doc, "members")
	if err != nil {
		return nil, err
	}
	exclude, err := optionalStrings(doc, "exclude")
	if err != nil {
		return nil, err
	}
	excluded := toSet(exclude)

	result := make([]string, 0, len(members))
	for _, m := range members {
		if !isGlob(m) {
			result = append(result, m)
			continue
		}
		dirs, err := r.expand(m)
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			if !excluded[d] {
				result = append(result, d)
			}
		}
	}
	return result, nil
}

// expand returns the directories matching pattern, relative to r.Dir and
// slash-separated, in alphabetical order. Only the pattern is interpreted
// as glob syntax; the workspace directory and the pattern's leading literal
// segments are matched verbatim.
func (r Resolver) expand(pattern string) ([]string, error) {
	base := r.dir()
	prefix, rest := splitLiteral(filepath.ToSlash(pattern))
	start := filepath.Join(base, filepath.FromSlash(prefix))
	if filepath.IsAbs(filepath.FromSlash(prefix)) {
		start = filepath.FromSlash(prefix)
	}

	fsys := os.DirFS(start)
	matches, err := doublestar.Glob(fsys, rest)
	if err != nil {
		return nil, fmt.Errorf("expanding member pattern %q: %w", pattern, err)
	}

	dirs := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(base, filepath.Join(start, filepath.FromSlash(m)))
		if err != nil {
			continue
		}
		dirs = append(dirs, filepath.ToSlash(rel))
	}
	sort.Strings(dirs)
	return dirs, nil
}

// splitLiteral splits a slash-separated pattern before its first segment
// containing glob syntax. The prefix may hold ".." segments that fs.FS
// patterns cannot express.
func splitLiteral(pattern string) (prefix, rest string) {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		if isGlob(seg) {
			return strings.Join(segs[:i], "/"), strings.Join(segs[i:], "/")
		}
	}
	return pattern, "."
}

func (r Resolver) dir() string {
	if r.Dir == "" {
		return "."
	}
	return r.Dir
}

// ListLocalDependencies returns the dependencies of a member manifest that
// declare both a path and a version, sorted by name. A manifest without a
// [dependencies] section is a schema error.
func ListLocalDependencies(memberManifestPath string) ([]LocalDependency, error) {
	deps, err := manifest.ReadDependencies(memberManifestPath)
	if err != nil {
		return nil, err
	}
	var local []LocalDependency
	for _, d := range deps {
		if d.IsLocal() {
			local = append(local, LocalDependency{Name: d.Name, Path: d.Path, Version: d.Version})
		}
	}
	return local, nil
}

func optionalStrings(doc manifest.Document, key string) ([]string, error) {
	tbl, ok := doc.Table("workspace")
	if !ok {
		return nil, nil
	}
	if _, ok := tbl[key]; !ok {
		return nil, nil
	}
	return doc.Strings("workspace", key)
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[filepath.ToSlash(filepath.Clean(s))] = true
	}
	return m
}
