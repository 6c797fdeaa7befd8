package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/nlpwire/fanout"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		inputs string
		pf     paramFlags
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "batch <component> [input]...",
		Short: "Run a component independently on each of several inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			bundle, err := pf.bundle()
			if err != nil {
				return err
			}
			list := append(fanout.SplitInputs(inputs), args[1:]...)
			b, err := fanout.FromList(args[0], list, bundle)
			if err != nil {
				return err
			}
			return a.runBatch(cmd, b, dryRun)
		},
	}
	cmd.Flags().StringVar(&inputs, "inputs", "", "Comma-separated input files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the task graph instead of running it")
	pf.register(cmd)
	return cmd
}

func newBatchDirCmd(a *app) *cobra.Command {
	var (
		dir     string
		pattern string
		pf      paramFlags
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "batch-dir <component>",
		Short: "Run a component independently on each matching entry of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			bundle, err := pf.bundle()
			if err != nil {
				return err
			}
			b, err := fanout.FromDir(a.fs, args[0], dir, pattern, bundle)
			if err != nil {
				return err
			}
			return a.runBatch(cmd, b, dryRun)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Input directory")
	cmd.Flags().StringVar(&pattern, "pattern", fanout.DefaultPattern, "Glob selecting directory entries")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the task graph instead of running it")
	_ = cmd.MarkFlagRequired("dir")
	pf.register(cmd)
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, b *fanout.Batch, dryRun bool) error {
	plan, err := fanout.Plan(a.resolver, b)
	if err != nil {
		return err
	}
	if dryRun {
		return printPlan(cmd.OutOrStdout(), plan)
	}
	return a.execute(cmd, plan)
}
