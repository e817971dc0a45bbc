package main

import (
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "List workspace members with globs expanded",
		Args:  cobra.NoArgs,
		RunE:  runMembers,
	}
	addFormatFlag(cmd)
	return cmd
}

type memberInfo struct {
	Path    string `json:"path" yaml:"path"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

func runMembers(cmd *cobra.Command, _ []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	ws, err := workspace.Load(e.root)
	if err != nil {
		return err
	}

	members, err := ws.Members()
	if err != nil {
		return err
	}

	infos := make([]memberInfo, 0, len(members))
	for _, m := range members {
		infos = append(infos, describeMember(ws, m))
	}

	return render(cmd, format, infos, []string{"MEMBER", "NAME", "VERSION"}, func(t *ui.Table) {
		for _, mi := range infos {
			t.Row(mi.Path, mi.Name, mi.Version)
		}
	})
}

// describeMember reads name and version when the member manifest has them.
// Literal members are listed even if their directory does not exist.
func describeMember(ws *workspace.Context, member string) memberInfo {
	mi := memberInfo{Path: member}
	doc, err := manifest.Load(ws.MemberManifest(member))
	if err != nil {
		return mi
	}
	mi.Name, _ = doc.String("package", "name")
	mi.Version, _ = doc.String("package", "version")
	return mi
}
