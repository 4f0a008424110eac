package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/boardcfg/internal/model"
	"github.com/StinkyLord/boardcfg/internal/store"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change the configuration selected for a board",
	}
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUpdateCmd())
	cmd.AddCommand(newConfigResetCmd())
	cmd.AddCommand(newConfigListCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <board>",
		Short: "Print the build config of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.board(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.BuildConfig())
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <board> [id=option[,id=option...]]",
		Short: "Load a configuration string into a board and store it",
		Long: `Load a configuration string into a board and store it.

An empty or missing configuration resets every axis to its first option.
When <board> is a build config, its configuration suffix is used.

Examples:
  boardcfg config set nano cpu=atmega328old
  boardcfg config set arduino:avr:mega:cpu=atmega1280
  boardcfg config set nano ""`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			b, suffix, err := s.result.Catalog.Resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := store.Restore(cmd.Context(), s.store, b, s.logger); err != nil {
				return err
			}

			config := suffix
			if len(args) == 2 {
				config = args[1]
			}
			return s.apply(cmd, b, b.LoadConfig(config), config)
		},
	}
}

func newConfigUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <board> <id> <option>",
		Short: "Select one option of one configuration axis",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.board(cmd, args[0])
			if err != nil {
				return err
			}
			return s.apply(cmd, b, b.UpdateConfig(args[1], args[2]), args[1]+"="+args[2])
		},
	}
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <board>",
		Short: "Reset a board to its default options and forget the stored selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			b, _, err := s.result.Catalog.Resolve(args[0])
			if err != nil {
				return err
			}
			b.ResetConfig()
			if err := s.store.Delete(cmd.Context(), b.Key()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "%s", b.BuildConfig())
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored board configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			entries, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(entries))
			for k := range entries {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			printKeyValues(cmd.OutOrStdout(), keys, entries)
			return nil
		},
	}
}

// apply persists the board and reports r when r is a success. A failed result
// is returned as a *model.ConfigError and reported once by Execute.
func (s *session) apply(cmd *cobra.Command, b *model.Board, r model.BoardConfigResult, input string) error {
	if err := r.Err(input); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if err := store.Save(cmd.Context(), s.store, b); err != nil {
		return err
	}
	if r == model.SuccessNoChange {
		printWarning(out, "%s: %s", r.Message(), b.BuildConfig())
		return nil
	}
	printSuccess(out, "%s: %s", r.Message(), b.BuildConfig())
	return nil
}
