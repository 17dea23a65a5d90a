// File: cmd/shepctl/commands.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-shepherd/internal/placement"
)

var guessCmd = &cobra.Command{
	Use:   "guess",
	Short: "Print the estimated shepherd and worker counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRuntime()
		if err != nil {
			return err
		}
		defer r.Close()
		c := r.Counts()
		fmt.Fprintf(cmd.OutOrStdout(), "shepherds: %d\nworkers per shepherd: %d\n", c.Shepherds, c.WorkersPerShepherd)
		return nil
	},
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Print each shepherd's home CPU, distances and neighbor order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRuntime()
		if err != nil {
			return err
		}
		defer r.Close()
		return printPlacement(cmd.OutOrStdout(), r.Placement())
	},
}

var barrierRounds int

var barrierCmd = &cobra.Command{
	Use:   "barrier-bench",
	Short: "Cycle every shepherd through the global barrier and report the cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRuntime()
		if err != nil {
			return err
		}
		defer r.Close()
		gb := r.GlobalBarrier()
		start := time.Now()
		err = r.Run(context.Background(), func(ctx context.Context, sh *placement.Shepherd) error {
			for i := 0; i < barrierRounds; i++ {
				gb.Wait()
			}
			return nil
		})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		per := time.Duration(0)
		if barrierRounds > 0 {
			per = elapsed / time.Duration(barrierRounds)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d shepherds, %d cycles in %v (%v/cycle)\n",
			gb.Size(), gb.Cycles(), elapsed, per)
		return nil
	},
}

func init() {
	barrierCmd.Flags().IntVarP(&barrierRounds, "rounds", "n", 10000, "barrier cycles")
}

func printPlacement(w io.Writer, p *placement.Placement) error {
	if p.IsUniform() {
		fmt.Fprintln(w, "topology unavailable: uniform placement")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHEPHERD\tCPU\tLOCALITY\tDISTANCES\tNEIGHBORS")
	for _, sh := range p.Shepherds() {
		cpu, loc := "-", "-"
		if c, ok := sh.Home().CPU(); ok {
			cpu = fmt.Sprint(c)
		}
		if l, ok := sh.Home().Locality(); ok {
			loc = fmt.Sprint(l)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%v\t%v\n", sh.ID(), cpu, loc, sh.Distances(), sh.Neighbors())
	}
	return tw.Flush()
}
