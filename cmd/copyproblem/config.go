package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/copyproblem/internal/config"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the persisted settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				data, err := yaml.Marshal(a.resolved.Settings)
				if err != nil {
					return fmt.Errorf("encode settings: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# %s\n", a.resolved.Path)
				_, err = out.Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), a.resolved.Path)
				return err
			},
		},
		&cobra.Command{
			Use:   "keys",
			Short: "List the setting keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, k := range config.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one effective setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.resolved.Settings.Get(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: `Change and save one setting (templates accept \n and \t)`,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.fileStore()
				if err != nil {
					return err
				}
				snap, err := st.Update(func(s *config.Settings) error {
					return s.Set(args[0], args[1])
				})
				if err != nil {
					return err
				}
				v, _ := snap.Settings.Get(args[0])
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (saved to %s)\n", args[0], v, st.Path())
				return err
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore and save the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := a.fileStore()
				if err != nil {
					return err
				}
				if _, err := st.Apply(config.Default()); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "settings reset (saved to %s)\n", st.Path())
				return err
			},
		},
	)
	return cmd
}

// fileStore is a store over the settings file alone, so that command-line
// overrides are never persisted by config set or reset.
func (a *app) fileStore() (*config.Store, error) {
	s, err := config.Load(a.fs, a.resolved.Path)
	if err != nil {
		return nil, err
	}
	st := config.NewStore(a.fs, a.resolved.Path, s)
	st.Subscribe(func(snap config.Snapshot) {
		a.log.Info("settings saved", "path", a.resolved.Path, "version", snap.Version)
	})
	return st, nil
}
