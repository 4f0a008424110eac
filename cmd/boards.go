package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/boardcfg/internal/model"
	"github.com/StinkyLord/boardcfg/internal/store"
)

func newBoardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List and inspect boards",
	}
	cmd.AddCommand(newBoardsListCmd())
	cmd.AddCommand(newBoardsShowCmd())
	return cmd
}

func newBoardsListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every board with its build config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			for _, b := range s.result.Catalog.All {
				if _, err := store.Restore(ctx, s.store, b, s.logger); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				type row struct {
					Key         string `json:"key"`
					Name        string `json:"name"`
					BuildConfig string `json:"buildConfig"`
				}
				rows := make([]row, 0, len(s.result.Catalog.All))
				for _, b := range s.result.Catalog.All {
					rows = append(rows, row{Key: b.Key(), Name: b.Name, BuildConfig: b.BuildConfig()})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			for _, b := range s.result.Catalog.All {
				fmt.Fprintf(out, "%-32s %s\n", b.Key(), styleDim.Render(b.Name))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newBoardsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <board>",
		Short: "Show a board's configuration axes and the selected options",
		Long: `Show a board's configuration axes and the selected options.

<board> is a board key (arduino:avr:nano), a build config
(arduino:avr:nano:cpu=atmega328old) or a board id that is unique.`,
		Args: cobra.ExactArgs(1),
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
			printBoard(cmd, b)
			return nil
		},
	}
}

// board resolves ref, restores its stored selection and applies any config
// suffix carried by ref without persisting it.
func (s *session) board(cmd *cobra.Command, ref string) (*model.Board, error) {
	b, suffix, err := s.result.Catalog.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if _, err := store.Restore(cmd.Context(), s.store, b, s.logger); err != nil {
		return nil, err
	}
	if suffix != "" {
		if err := b.LoadConfig(suffix).Err(suffix); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func printBoard(cmd *cobra.Command, b *model.Board) {
	out := cmd.OutOrStdout()
	printTitle(out, b.Name)
	printLabelValue(out, "Key", b.Key())
	printLabelValue(out, "Build config", b.BuildConfig())

	for _, item := range b.ConfigItems() {
		title := item.DisplayName
		if title == "" {
			title = item.ID
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  "+styleTitle.Render(title)+" "+styleDim.Render("("+item.ID+")"))
		for _, opt := range item.Options {
			printOption(out, opt.ID, opt.DisplayName, opt.ID == item.SelectedOption)
		}
	}
}
