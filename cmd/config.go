package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pme-sh/hostsfile/config"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	// Add the config commands
	//
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Get or set the hostsfile configuration",
		GroupID: refGroup("config", "Configuration Commands"),
	}
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Get the hostsfile configuration",
	}
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the hostsfile configuration",
	}
	dumpCmd := &cobra.Command{
		Use:   "all",
		Short: "Display all configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			var res []byte
			if cmd.Flag("json").Value.String() == "true" {
				res = lo.Must(json.MarshalIndent(cfg, "", "  "))
			} else {
				res = lo.Must(yaml.Marshal(cfg))
			}
			fmt.Fprint(cmd.OutOrStdout(), string(res))
			return nil
		},
	}
	dumpCmd.Flags().Bool("json", false, "Output in JSON format")
	getCmd.AddCommand(dumpCmd)
	configCmd.AddCommand(getCmd, setCmd)
	config.RootCommand.AddCommand(configCmd)

	// Add the top-level config settings
	//
	getset := func(name string, get func(*config.Config) any, set func(*config.Config, string) error) {
		setCmd.AddCommand(&cobra.Command{
			Use:   name + " [value]",
			Short: "Set the " + name,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return config.Update(func(s *config.Config) error {
					return set(s, args[0])
				})
			},
		})
		getCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Get the " + name,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), get(cfg))
				return nil
			},
		})
	}
	getset(
		"default-priority",
		func(c *config.Config) any { return c.DefaultPriority() },
		func(c *config.Config, v string) error {
			p, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			c.Priority = &p
			return nil
		},
	)
	getset(
		"hosts-file",
		func(c *config.Config) any { return targetPath(c, "") },
		func(c *config.Config, v string) error { c.Path = v; return nil },
	)
	getset(
		"atomic-write",
		func(c *config.Config) any { return c.AtomicWrite() },
		func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			c.Atomic = &b
			return nil
		},
	)
}
