package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/neet-pulse/internal/timer"
	"github.com/spf13/cobra"
)

func newTimerCmd(c *cli) *cobra.Command {
	var modeName string
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the mock exam (200 min) or focus block (50 min) countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := timer.ParseMode(modeName)
			if err != nil {
				return err
			}

			countdown := timer.New(mode)
			state := countdown.Toggle()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s  %s\n", mode.Label(), state.Status(), state.String())

			ticks, stop := c.newTicker(time.Second)
			defer stop()

			err = countdown.Run(cmd.Context(), ticks, func(s timer.State) {
				fmt.Fprintf(out, "\r%s", s.String())
			})
			fmt.Fprintln(out)

			final := countdown.State()
			switch {
			case errors.Is(err, context.Canceled):
				fmt.Fprintf(out, "Stopped with %s remaining.\n", final.String())
				return nil
			case err != nil:
				return err
			case final.Remaining == 0:
				fmt.Fprintln(out, "TIME UP.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modeName, "mode", string(timer.ModeMock), "countdown mode: mock or focus")
	return cmd
}
