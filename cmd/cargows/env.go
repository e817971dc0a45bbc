package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/cargows/internal/cargo"
	"github.com/fbkclanna/cargows/internal/config"
	"github.com/fbkclanna/cargows/internal/logging"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/registry"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Swapped out in tests.
var (
	newRunner  = func() cargo.Runner { return cargo.ExecRunner{} }
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// env carries what every command resolves from the persistent flags.
type env struct {
	root   string
	cfg    config.Config
	logger *log.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	root, _ := cmd.Flags().GetString("root")
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfgPath, _ := cmd.Flags().GetString("config")

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving --root: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return &env{
		root:   abs,
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), verbose),
	}, nil
}

func (e *env) manifestPath() string {
	return filepath.Join(e.root, manifest.FileName)
}

func (e *env) cargo() *cargo.Cargo {
	return &cargo.Cargo{Runner: newRunner(), Logger: e.logger}
}

func (e *env) registry() (*registry.Client, error) {
	return registry.NewClient(e.cfg.RegistryURL, "cargows/"+version, e.logger)
}
