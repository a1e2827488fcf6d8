package main

import (
	"fmt"
	"log"
	"os"

	"github.com/perfclinic/memlab/internal/metrics"
	"github.com/perfclinic/memlab/internal/version"
	"github.com/perfclinic/memlab/pkg/console"
	"github.com/perfclinic/memlab/pkg/filedemo"
	"github.com/perfclinic/memlab/pkg/heap"
	"github.com/perfclinic/memlab/pkg/strdemo"
	"github.com/perfclinic/memlab/pkg/verify"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "memlab",
		Short:   "memlab - interactive memory and resource pitfall demos",
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return console.New(os.Stdin, cmd.OutOrStdout()).Run()
		},
	}

	root.AddCommand(newRunCmd(), newCleanCmd(), newGCCmd(), newVerifyCmd(), newStatsCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run {bad-string|good-string|bad-file|good-file}",
		Short: "Run one demo routine non-interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bad-string":
				strdemo.RunBad(out, strdemo.Iterations)
			case "good-string":
				strdemo.RunGood(out, strdemo.Iterations)
			case "bad-file":
				return filedemo.Run(out, filedemo.Leaky, filedemo.BadRoot, filedemo.DefaultCount)
			case "good-file":
				return filedemo.Run(out, filedemo.Released, filedemo.GoodRoot, filedemo.DefaultCount)
			default:
				return fmt.Errorf("unknown demo %q", args[0])
			}
			return nil
		},
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the goodfile/ and badfile/ directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return filedemo.RemoveDirs(filedemo.BadRoot, filedemo.GoodRoot)
		},
	}
}

func newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Force a garbage collection and report the heap delta",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			heap.Collect(cmd.OutOrStdout())
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify {good|bad}",
		Short: "Print a Merkle root over one demo directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "good":
				return verify.Report(cmd.OutOrStdout(), filedemo.GoodRoot)
			case "bad":
				return verify.Report(cmd.OutOrStdout(), filedemo.BadRoot)
			default:
				return fmt.Errorf("unknown variant %q", args[0])
			}
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the metrics collected in this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return metrics.Dump(cmd.OutOrStdout())
		},
	}
}
