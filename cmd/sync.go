package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export people and exercise settings to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := storage.GetExportPath()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			outputFile = args[0]
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.ExportConfigToFile(context.Background(), outputFile); err != nil {
			return fmt.Errorf("error exporting config: %w", err)
		}
		fmt.Printf("✅ Config exported successfully to %s\n", outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dump-file]",
	Short: "Replace people and exercise settings from a TOML export",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dumpFile, err := storage.GetExportPath()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			dumpFile = args[0]
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.store.ImportConfigFromFile(context.Background(), expectedRev(cmd), dumpFile)
		if err != nil {
			return fmt.Errorf("Failed to import config: %w", err)
		}
		fmt.Printf("✅ Imported %d people from %s (rev %d)\n", len(st.People), dumpFile, st.Rev)
		return nil
	},
}

func init() {
	addExpectedRev(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
