package main

import (
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/spf13/cobra"
)

func addFieldFlags(cmd *cobra.Command, defaultKind string) {
	cmd.Flags().String("kind", defaultKind, "Project kind: app or module")
	cmd.Flags().String("description", "", "Package description")
	cmd.Flags().String("repository", "", "Repository URL (default from config repository_base)")
	cmd.Flags().String("license", "", "License expression (default from config)")
	cmd.Flags().String("author-name", "", "Author name")
	cmd.Flags().String("author-email", "", "Author email")
	cmd.Flags().String("author-org", "", "Author organization")
	cmd.Flags().Bool("no-input", false, "Never prompt; fail when the author is incomplete")
}

// resolveFields merges, in decreasing precedence, flags, values already
// present in the manifest at path, and config defaults.
func resolveFields(cmd *cobra.Command, e *env, path string) (manifest.Fields, error) {
	kindFlag, _ := cmd.Flags().GetString("kind")
	description, _ := cmd.Flags().GetString("description")
	repository, _ := cmd.Flags().GetString("repository")
	license, _ := cmd.Flags().GetString("license")
	noInput, _ := cmd.Flags().GetBool("no-input")

	doc, err := manifest.Load(path)
	if err != nil {
		return manifest.Fields{}, err
	}
	existing := func(key string) string {
		s, _ := doc.String("package", key)
		return s
	}

	if kindFlag == "" {
		if kw, err := doc.Strings("package", "keywords"); err == nil && len(kw) > 0 {
			kindFlag = kw[0]
		}
	}
	if kindFlag == "" {
		return manifest.Fields{}, fmt.Errorf("--kind is required (app or module)")
	}
	kind, err := manifest.ParseKind(kindFlag)
	if err != nil {
		return manifest.Fields{}, err
	}

	f := manifest.Fields{
		Kind:        kind,
		Description: firstNonEmpty(description, existing("description")),
		Repository:  firstNonEmpty(repository, existing("repository"), e.cfg.RepositoryURL(existing("name"))),
		License:     firstNonEmpty(license, existing("license"), e.cfg.License),
		Author:      e.cfg.Author,
	}
	for flag, dst := range map[string]*string{
		"author-name":  &f.Author.Name,
		"author-email": &f.Author.Email,
		"author-org":   &f.Author.Organization,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}

	if !f.Author.Complete() {
		if noInput || !isTerminal() {
			return manifest.Fields{}, fmt.Errorf("author name, email and organization are required " +
				"(use --author-* flags, the [author] config table or CARGOWS_AUTHOR_* variables)")
		}
		a, err := promptAuthor(filepath.Dir(path), f.Author)
		if err != nil {
			return manifest.Fields{}, fmt.Errorf("author prompt: %w", err)
		}
		f.Author = a
	}
	if err := emailValidator(f.Author.Email); err != nil {
		return manifest.Fields{}, err
	}
	return f, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
