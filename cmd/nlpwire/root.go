package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kbukum/nlpwire/catalog"
	"github.com/kbukum/nlpwire/component"
	"github.com/kbukum/nlpwire/config"
	"github.com/kbukum/nlpwire/engine"
	"github.com/kbukum/nlpwire/logger"
	"github.com/kbukum/nlpwire/observability"
	"github.com/kbukum/nlpwire/process"
	"github.com/kbukum/nlpwire/resolver"
	"github.com/kbukum/nlpwire/version"
)

type globalFlags struct {
	configFile     string
	catalogs       []string
	schedulerHost  string
	schedulerPort  int
	localScheduler bool
	logLevel       string
	logDir         string
	workers        int
}

// app is the wiring shared by every command.
type app struct {
	fs    afero.Fs
	flags globalFlags

	cfg      *config.Config
	log      *logger.Logger
	resolver *resolver.Resolver
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}
	root := &cobra.Command{
		Use:   "nlpwire",
		Short: "Resolve and run chains of NLP components",
		Long: "nlpwire wires declared NLP components into a task graph that turns\n" +
			"input files of one format into outputs of another, then runs it.",
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.configFile, "config", "", "Config file (default: searched)")
	f.StringSliceVar(&a.flags.catalogs, "catalog", nil, "Catalog file or directory (repeatable)")
	f.StringVar(&a.flags.schedulerHost, "scheduler-host", "", "Central scheduler host")
	f.IntVar(&a.flags.schedulerPort, "scheduler-port", 0, "Central scheduler port")
	f.BoolVar(&a.flags.localScheduler, "local-scheduler", false, "Never contact a central scheduler")
	f.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&a.flags.logDir, "log-dir", "", "Directory receiving run log files")
	f.IntVar(&a.flags.workers, "workers", 0, "Tasks run in parallel")

	root.AddCommand(
		newRunCmd(a),
		newPlanCmd(a),
		newBatchCmd(a),
		newBatchDirCmd(a),
		newComponentsCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and catalogs and builds the resolver.
func (a *app) setup(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.flags.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.override(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.Init(&cfg.Logging, config.ServiceName, nil)

	reg := component.NewRegistry()
	loader := catalog.NewLoader(a.fs,
		catalog.WithLogger(a.log),
		catalog.WithAdapter(process.NewAdapter(cfg.Process, a.log)))
	if _, err := loader.Load(reg, cfg.Catalogs...); err != nil {
		return err
	}
	a.resolver, err = resolver.New(reg, a.fs,
		resolver.WithMaxDepth(cfg.Resolver.MaxDepth),
		resolver.WithLogger(a.log))
	return err
}

// override applies flags the user set on top of the loaded configuration.
func (a *app) override(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	cfg.Catalogs = append(cfg.Catalogs, a.flags.catalogs...)
	if flags.Changed("scheduler-host") {
		cfg.Engine.Scheduler.Host = a.flags.schedulerHost
	}
	if flags.Changed("scheduler-port") {
		cfg.Engine.Scheduler.Port = a.flags.schedulerPort
	}
	if flags.Changed("local-scheduler") {
		cfg.Engine.Scheduler.Local = a.flags.localScheduler
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.flags.logLevel
	}
	if flags.Changed("log-dir") {
		cfg.Engine.LogDir = a.flags.logDir
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers = a.flags.workers
	}
}

func (a *app) runner() (*engine.Runner, error) {
	metrics, err := observability.NewMetrics(observability.Meter(config.ServiceName))
	if err != nil {
		return nil, err
	}
	cfg := a.cfg.Engine
	if a.cfg.Telemetry.Enabled() {
		cfg.Tracing = true
	}
	return engine.New(cfg, a.fs, engine.WithLogger(a.log), engine.WithMetrics(metrics))
}
