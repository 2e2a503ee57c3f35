package cmd

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/pme-sh/hostsfile/config"
	"github.com/pme-sh/hostsfile/hosts"
	"github.com/pme-sh/hostsfile/revision"
	"github.com/pme-sh/hostsfile/ui"
	"github.com/pme-sh/hostsfile/xlog"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

func init() {
	pre := config.RootCommand.PersistentPreRunE
	config.RootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		xlog.Reconfigure(*config.LogFile)
		if pre != nil {
			return pre(cmd, args)
		}
		return nil
	}
}

func refGroup(id, name string) string {
	if !config.RootCommand.ContainsGroup(id) {
		config.RootCommand.AddGroup(&cobra.Group{
			ID:    id,
			Title: name + ":",
		})
	}
	return id
}

// targetPath picks the hosts file: --file, then override, then the
// configuration, then the system default.
func targetPath(cfg *config.Config, override string) string {
	switch {
	case *config.HostsFile != "":
		return *config.HostsFile
	case override != "":
		return override
	case cfg.Path != "":
		return cfg.Path
	}
	return hosts.SystemPath()
}

func openHosts(override string) (*hosts.Manipulator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return hosts.Open(cfg, targetPath(cfg, override))
}

// commit saves m, or prints what would be written when dryRun is set.
func commit(cmd *cobra.Command, m *hosts.Manipulator, dryRun bool) error {
	if dryRun {
		fmt.Fprint(cmd.OutOrStdout(), string(m.Render()))
		return nil
	}
	changed, err := m.Save()
	if err != nil {
		return err
	}
	if changed {
		cmd.Println(ui.RenderOkLine("updated " + m.Path()))
	} else {
		cmd.Println(ui.FaintStyle.Render("unchanged " + m.Path()))
	}
	return nil
}

// errorMessage is what the user sees for a failed command.
func errorMessage(err error) string {
	if errors.Is(err, hosts.ErrMissingTargetFile) {
		return fmt.Sprintf("fatal: %v", err)
	}
	return err.Error()
}

func exitWithError(err error) {
	if errors.Is(err, hosts.ErrMissingTargetFile) {
		xlog.ErrStack(err).Msg("Refusing to run without a hosts file")
	}
	ui.ExitWithError(errorMessage(err))
}

func Execute() {
	if runtime.GOMAXPROCS(0) > 4 {
		runtime.GOMAXPROCS(4)
	}
	maxprocs.Set()
	config.RootCommand.Short += ui.FaintStyle.Render(" (" + revision.GetVersion() + ")")
	if err := config.RootCommand.Execute(); err != nil {
		exitWithError(err)
	}
}
