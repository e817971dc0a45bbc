package main

import (
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/git"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/semver"
	"github.com/spf13/cobra"
)

func newBumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "bump <major|minor|patch>",
		Short:     "Increment the package version in Cargo.toml",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(semver.Major), string(semver.Minor), string(semver.Patch)},
		RunE:      runBump,
	}
	cmd.Flags().String("section", "package", "Table holding the version key (e.g. workspace.package)")
	cmd.Flags().Bool("commit", false, "Commit the manifest as \"Release <version>\"")
	cmd.Flags().Bool("tag", false, "Create tag v<version> (requires --commit)")
	return cmd
}

func runBump(cmd *cobra.Command, args []string) error {
	section, _ := cmd.Flags().GetString("section")
	doCommit, _ := cmd.Flags().GetBool("commit")
	doTag, _ := cmd.Flags().GetBool("tag")

	part, err := semver.ParsePart(args[0])
	if err != nil {
		return err
	}
	if doTag && !doCommit {
		return fmt.Errorf("--tag requires --commit")
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if doCommit {
		if err := checkReleasable(e.root); err != nil {
			return err
		}
	}
	if doTag {
		if err := checkTagFree(e.manifestPath(), section, part); err != nil {
			return err
		}
	}

	b, err := manifest.BumpVersionIn(e.manifestPath(), section, part)
	if err != nil {
		return err
	}
	e.logger.Debug("bumped " + b.String())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", b.From, b.To)

	if !doCommit {
		return nil
	}
	if err := releaseCommit(cmd, e.root, b.To.String()); err != nil {
		if rerr := git.Restore(e.root, manifest.FileName); rerr != nil {
			return fmt.Errorf("%w; %s is left at %s: %w", err, manifest.FileName, b.To, rerr)
		}
		return fmt.Errorf("%w; %s restored to %s", err, manifest.FileName, b.From)
	}
	if doTag {
		return releaseTag(cmd, e.root, b.To.String())
	}
	return nil
}

// checkReleasable fails before any file is touched when the manifest
// cannot be committed cleanly.
func checkReleasable(dir string) error {
	if !git.IsGitInstalled() {
		return fmt.Errorf("--commit requires git on PATH")
	}
	if !git.IsRepo(dir) {
		return fmt.Errorf("--commit: %s is not a git repository", dir)
	}
	dirty, err := git.IsDirty(dir, manifest.FileName)
	if err != nil {
		return fmt.Errorf("checking %s: %w", manifest.FileName, err)
	}
	if dirty {
		return fmt.Errorf("%s has uncommitted changes; commit or stash them first", manifest.FileName)
	}
	return nil
}

// checkTagFree computes the version a bump would produce and fails when
// its tag already exists.
func checkTagFree(path, section string, part semver.Part) error {
	raw, err := manifest.ReadString(path, section, "version")
	if err != nil {
		return err
	}
	cur, err := semver.Parse(raw)
	if err != nil {
		return err
	}
	next, err := cur.Bump(part)
	if err != nil {
		return err
	}
	tag := "v" + next.String()
	exists, err := git.TagExists(filepath.Dir(path), tag)
	if err != nil {
		return fmt.Errorf("checking tag %s: %w", tag, err)
	}
	if exists {
		return fmt.Errorf("tag %s already exists", tag)
	}
	return nil
}

// releaseCommit stages and commits the bumped manifest.
func releaseCommit(cmd *cobra.Command, dir, version string) error {
	if err := git.Add(dir, manifest.FileName); err != nil {
		return fmt.Errorf("staging %s: %w", manifest.FileName, err)
	}
	msg := "Release " + version
	if err := git.Commit(dir, msg); err != nil {
		return fmt.Errorf("committing release: %w", err)
	}
	sha, _ := git.HeadCommit(dir)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Committed %s %q\n", sha, msg)
	return nil
}

func releaseTag(cmd *cobra.Command, dir, version string) error {
	tag := "v" + version
	if err := git.Tag(dir, tag, "Release "+version); err != nil {
		return fmt.Errorf("tagging %s (release commit kept): %w", tag, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s\n", tag)
	return nil
}
