package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/weekplan/internal/scheduler"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Archive last week's completed workouts and delete last week's plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		st, err := a.store.Load(ctx)
		if err != nil {
			return err
		}
		next, err := a.svc.Rollover(ctx)
		if err != nil {
			return err
		}
		printRev(st.Rev, next, "Rolled over the week of "+a.svc.WeekStartForOffset(-1).Format("2006-01-02"))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the weekly rollover on the configured schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		spec := a.cfg.Rollover.Schedule
		s := scheduler.New(a.loc, a.log)
		err = s.Add("rollover", spec, func(ctx context.Context) error {
			// Another process may have written since the last run.
			if _, err := a.store.Reload(ctx); err != nil {
				return err
			}
			_, err := a.svc.Rollover(ctx)
			return err
		})
		if err != nil {
			return err
		}

		next, err := scheduler.Next(spec, a.svc.Clock.Now().In(a.loc))
		if err != nil {
			return err
		}
		fmt.Printf("✅ Watching, next rollover at %s (Ctrl+C to stop)\n", next.Format("Mon 2006-01-02 15:04"))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		s.Run(ctx)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(watchCmd)
}
