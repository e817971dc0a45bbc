package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/manifest"
)

// Context holds the resolved paths for a workspace.
type Context struct {
	Root         string
	ManifestPath string
	Resolver     Resolver
}

// Load resolves the workspace root and checks that its manifest parses.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	manifestPath := filepath.Join(root, manifest.FileName)
	if _, err := manifest.Load(manifestPath); err != nil {
		return nil, err
	}

	return &Context{
		Root:         root,
		ManifestPath: manifestPath,
		Resolver:     Resolver{Dir: root},
	}, nil
}

// Members lists the workspace members. Manifests are re-read on every call.
func (c *Context) Members() ([]string, error) {
	return c.Resolver.ListMembers(c.ManifestPath)
}

// MemberDir returns the absolute directory of a member.
func (c *Context) MemberDir(member string) string {
	return filepath.Join(c.Root, filepath.FromSlash(member))
}

// MemberManifest returns the absolute manifest path of a member.
func (c *Context) MemberManifest(member string) string {
	return filepath.Join(c.MemberDir(member), manifest.FileName)
}

// Relation is a local dependency from one member onto another.
type Relation struct {
	From       string `json:"from" yaml:"from"`
	To         string `json:"to" yaml:"to"`
	Dependency string `json:"dependency" yaml:"dependency"`
	Version    string `json:"version" yaml:"version"`
}

// Relations returns the direct member-to-member local dependencies.
// Members without a [dependencies] section contribute no relations; local
// dependencies pointing outside the workspace are skipped.
func (c *Context) Relations() ([]Relation, error) {
	members, err := c.Members()
	if err != nil {
		return nil, err
	}

	byDir := make(map[string]string, len(members))
	for _, m := range members {
		byDir[filepath.Clean(c.MemberDir(m))] = m
	}

	var rels []Relation
	for _, m := range members {
		deps, err := ListLocalDependencies(c.MemberManifest(m))
		if errors.Is(err, manifest.ErrNoDependencies) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m, err)
		}
		for _, d := range deps {
			target := filepath.Clean(filepath.Join(c.MemberDir(m), filepath.FromSlash(d.Path)))
			to, ok := byDir[target]
			if !ok {
				continue
			}
			rels = append(rels, Relation{From: m, To: to, Dependency: d.Name, Version: d.Version})
		}
	}
	return rels, nil
}
