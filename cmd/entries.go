package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pme-sh/hostsfile/config"
	"github.com/pme-sh/hostsfile/hosts"
	"github.com/pme-sh/hostsfile/ui"
	"github.com/pme-sh/hostsfile/util"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	group := refGroup("entries", "Entry Commands")

	// add, update and append share their arguments
	//
	mutator := func(use, short string, op func(*hosts.Manipulator, hosts.Options) error) *cobra.Command {
		var (
			aliases  []string
			comment  string
			priority int
			dryRun   bool
		)
		cmd := &cobra.Command{
			Use:     use + " [ip] [hostname]",
			Short:   short,
			Args:    cobra.ExactArgs(2),
			GroupID: group,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts := hosts.Options{
					IPAddress: args[0],
					Hostname:  args[1],
					Comment:   comment,
				}
				if cmd.Flags().Changed("alias") {
					opts.Aliases = util.Many(aliases...)
				}
				if cmd.Flags().Changed("priority") {
					opts = opts.WithPriority(priority)
				}
				m, err := openHosts("")
				if err != nil {
					return err
				}
				if err := op(m, opts); err != nil {
					return err
				}
				return commit(cmd, m, dryRun)
			},
		}
		cmd.Flags().StringSliceVarP(&aliases, "alias", "a", nil, "Alias for the hostname, may be repeated")
		cmd.Flags().StringVarP(&comment, "comment", "c", "", "Comment written after the entry")
		cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Ordering priority, lower entries are written first")
		cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the resulting file instead of writing it")
		return cmd
	}

	addCmd := mutator("add", "Add an entry, duplicates are resolved by priority on save", (*hosts.Manipulator).Add)
	updateCmd := mutator("update", "Replace the entry for an address if it exists", (*hosts.Manipulator).Update)
	appendCmd := mutator("append", "Merge into the entry for an address, or add it", (*hosts.Manipulator).Append)

	var removeDryRun bool
	removeCmd := &cobra.Command{
		Use:     "remove [ip]",
		Aliases: []string{"rm"},
		Short:   "Remove the first entry for an address",
		Args:    cobra.ExactArgs(1),
		GroupID: group,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openHosts("")
			if err != nil {
				return err
			}
			m.Remove(args[0])
			return commit(cmd, m, removeDryRun)
		},
	}
	removeCmd.Flags().BoolVarP(&removeDryRun, "dry-run", "n", false, "Print the resulting file instead of writing it")

	getCmd := &cobra.Command{
		Use:     "get [ip]",
		Short:   "Show the entry for an address",
		Args:    cobra.ExactArgs(1),
		GroupID: group,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openHosts("")
			if err != nil {
				return err
			}
			e, ok := m.FindEntryByIPAddress(args[0])
			if !ok {
				return errors.Errorf("no entry for %s in %s", args[0], m.Path())
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Line())
			return nil
		},
	}

	var (
		listJSON   bool
		listRaw    bool
		listAll    bool
		listLocal  bool
		listDomain string
		listHost   string
	)
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the entries as they would be written",
		Args:    cobra.NoArgs,
		GroupID: group,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openHosts("")
			if err != nil {
				return err
			}
			if listRaw {
				fmt.Fprint(cmd.OutOrStdout(), string(m.Render()))
				return nil
			}

			entries := m.UniqueEntries()
			if listAll {
				entries = m.Entries()
			}
			entries = lo.Filter(entries, func(e hosts.Entry, _ int) bool {
				if listLocal && !e.IsLocal() {
					return false
				}
				if listHost != "" && !e.HasHost(listHost) {
					return false
				}
				return listDomain == "" || e.InDomain(listDomain)
			})

			if listJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			rows := lo.Map(entries, func(e hosts.Entry, _ int) []string {
				return []string{e.IPAddress, e.Hostname, strings.Join(e.Aliases, " "), strconv.Itoa(e.Priority), e.Comment}
			})
			out := ui.Table([]string{"ADDRESS", "HOSTNAME", "ALIASES", "PRIORITY", "COMMENT"}, rows)
			if *config.Dumb {
				out = stripStyles(rows)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listRaw, "raw", false, "Output the rendered file content")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include duplicate entries, in file order")
	listCmd.Flags().BoolVar(&listLocal, "local", false, "Only entries for local names or loopback addresses")
	listCmd.Flags().StringVar(&listDomain, "domain", "", "Only entries with a name within this domain")
	listCmd.Flags().StringVar(&listHost, "host", "", "Only entries mapping exactly this name")

	config.RootCommand.AddCommand(addCmd, updateCmd, appendCmd, removeCmd, getCmd, listCmd)
}

func stripStyles(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
