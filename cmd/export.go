package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/boardcfg/internal/output"
	"github.com/StinkyLord/boardcfg/internal/store"
)

func newExportCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board catalog with the stored selections as JSON",
		Long: `Write the board catalog as JSON: every platform, its boards, their
configuration axes and options, and each board's build config with the
stored selections applied.

Examples:
  boardcfg export -o boards.json
  boardcfg export -d hardware/arduino/avr/boards.txt -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, b := range s.result.Catalog.All {
				if _, err := store.Restore(cmd.Context(), s.store, b, s.logger); err != nil {
					return err
				}
			}

			if outputPath == "-" {
				return output.EncodeCatalog(cmd.OutOrStdout(), s.result, toolVersion)
			}
			if err := output.WriteCatalog(s.result, outputPath, toolVersion); err != nil {
				return fmt.Errorf("failed to write catalog: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Catalog written to: %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "boards.json", "Output file path (use '-' for stdout)")
	return cmd
}
