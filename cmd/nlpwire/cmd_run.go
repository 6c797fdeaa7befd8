package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/nlpwire/config"
	"github.com/kbukum/nlpwire/engine"
	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/fanout"
	"github.com/kbukum/nlpwire/observability"
	"github.com/kbukum/nlpwire/params"
	"github.com/kbukum/nlpwire/resolver"
	"github.com/kbukum/nlpwire/version"
)

type runFlags struct {
	input  string
	params paramFlags
}

func newRunCmd(a *app) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run <component>",
		Short: "Resolve a component for one input and run it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			plan, err := a.plan(args[0], flags)
			if err != nil {
				return err
			}
			return a.execute(cmd, plan)
		},
	}
	registerRunFlags(cmd, &flags)
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "plan <component>",
		Short: "Print the task graph a component resolves to without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			plan, err := a.plan(args[0], flags)
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), plan)
		},
	}
	registerRunFlags(cmd, &flags)
	return cmd
}

func registerRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Input file or directory")
	flags.params.register(cmd)
}

// plan resolves a single component instance. The input goes to the
// component's input parameter.
func (a *app) plan(name string, flags runFlags) (*resolver.Plan, error) {
	b, err := flags.params.bundle()
	if err != nil {
		return nil, err
	}
	given, err := fanout.ParseBundle(b)
	if err != nil {
		return nil, err
	}
	if flags.input != "" {
		desc, err := a.resolver.Registry().Lookup(name)
		if err != nil {
			return nil, err
		}
		given = given.With(desc.Input(), params.String(flags.input))
	}
	return a.resolver.Plan(name, given)
}

// execute runs a plan and prints its summary. A failed run is an error.
func (a *app) execute(cmd *cobra.Command, plan *resolver.Plan) error {
	ctx := cmd.Context()
	telemetry, err := observability.Setup(ctx, a.cfg.Telemetry, config.ServiceName, version.Get().Short(), a.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.log.WithError(err).Warn("Telemetry shutdown failed")
		}
	}()

	runner, err := a.runner()
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx, plan)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	if !report.Success {
		failure := errors.Scheduling(fmt.Sprintf("%d task(s) failed, %d skipped, see %s",
			report.Count(engine.OutcomeFailed), report.Count(engine.OutcomeSkipped), report.LogFile))
		if cause := report.Err(); cause != nil {
			failure = failure.WithCause(cause)
		}
		return failure
	}
	return nil
}

func printPlan(w io.Writer, plan *resolver.Plan) error {
	for _, t := range plan.Tasks() {
		targets, err := t.Targets()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", t.ID)
		if up := t.Upstream(); len(up) > 0 {
			ids := make([]string, len(up))
			for i, u := range up {
				ids[i] = u.ID
			}
			fmt.Fprintf(w, "  after:   %s\n", strings.Join(ids, ", "))
		}
		for _, target := range targets {
			fmt.Fprintf(w, "  output:  %s\n", target)
		}
	}
	return nil
}

func printReport(w io.Writer, r *engine.Report) {
	for _, t := range r.Tasks {
		fmt.Fprintf(w, "%-8s %s\n", t.Outcome, t.ID)
	}
	fmt.Fprintf(w, "Run %s: %d done, %d complete, %d failed, %d skipped in %s (scheduler %s, log %s)\n",
		r.RunID,
		r.Count(engine.OutcomeDone), r.Count(engine.OutcomeComplete),
		r.Count(engine.OutcomeFailed), r.Count(engine.OutcomeSkipped),
		r.Duration.Round(time.Millisecond), r.Scheduler, r.LogFile)
}
