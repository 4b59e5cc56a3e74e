package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the state document with a default person",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.store.Load(context.Background())
		if err != nil {
			return fmt.Errorf("Failed to initialize state: %w", err)
		}
		fmt.Printf("✅ State initialized at %s (rev %d, %d people)\n", a.cfg.Storage.DSN, st.Rev, len(st.People))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
