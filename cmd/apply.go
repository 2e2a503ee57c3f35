package cmd

import (
	"github.com/pme-sh/hostsfile/config"
	"github.com/pme-sh/hostsfile/manifest"
	"github.com/pme-sh/hostsfile/xlog"

	"github.com/spf13/cobra"
)

func init() {
	var dryRun bool
	applyCmd := &cobra.Command{
		Use:     "apply [manifest]",
		Short:   "Apply a desired state manifest to the hosts file",
		Args:    cobra.ExactArgs(1),
		GroupID: refGroup("entries", "Entry Commands"),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			m, err := openHosts(mf.File)
			if err != nil {
				return err
			}
			if err := mf.Apply(m); err != nil {
				return err
			}
			xlog.Debug().Str("manifest", args[0]).Int("resources", len(mf.Hosts)).Msg("Manifest applied")
			return commit(cmd, m, dryRun)
		},
	}
	applyCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the resulting file instead of writing it")
	config.RootCommand.AddCommand(applyCmd)
}
